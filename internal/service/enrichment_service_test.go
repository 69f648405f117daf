package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/JCarlovich/plataforma-idiomas-api/internal/dto"
)

func testLessonData() *LessonData {
	return &LessonData{
		StudentName:   "Lucía",
		StudentLevel:  "A2",
		TopicsCovered: "Los colores y la ropa",
		NewVocabulary: "camisa, falda, azul",
	}
}

// ── 三条生成路径 ──

func TestEnrichmentService_Unconfigured(t *testing.T) {
	svc := NewEnrichmentService(nil, zap.NewNop())

	result := svc.GenerateLessonContent(context.Background(), testLessonData())

	if result.Source != dto.SourceUnconfigured {
		t.Errorf("期望 fuente=plantilla_sin_ia，实际=%s", result.Source)
	}
	if !result.Degraded {
		t.Error("未配置路径应标记为降级")
	}
	if result.Content.Summary != unconfiguredSummary {
		t.Errorf("resumen 不符: %s", result.Content.Summary)
	}
}

func TestEnrichmentService_Success(t *testing.T) {
	gen := &mockTextGenerator{reply: `{
		"resumen": "Practicamos los colores con prendas de ropa",
		"vocabulario_repaso": ["camisa", "falda"],
		"recomendaciones": ["Describir tu armario en español"],
		"proxima_clase": "Ir de compras"
	}`}
	svc := NewEnrichmentService(gen, zap.NewNop())

	result := svc.GenerateLessonContent(context.Background(), testLessonData())

	if result.Source != dto.SourceAI {
		t.Errorf("期望 fuente=ia，实际=%s", result.Source)
	}
	if result.Degraded {
		t.Error("成功路径不应标记为降级")
	}
	if result.Content.Summary != "Practicamos los colores con prendas de ropa" {
		t.Errorf("resumen 应原样保留，实际=%s", result.Content.Summary)
	}
	if len(result.Content.VocabularyReview) != 2 {
		t.Errorf("vocabulario_repaso 应原样保留，实际=%v", result.Content.VocabularyReview)
	}
	// 模型未返回的序列字段统一为空数组
	if result.Content.PracticeExercises == nil || result.Content.PronunciationExercises == nil {
		t.Error("缺失的序列字段应规整为空数组")
	}
}

func TestEnrichmentService_SuccessWithCodeFence(t *testing.T) {
	gen := &mockTextGenerator{reply: "```json\n{\"resumen\": \"Clase de repaso general\"}\n```"}
	svc := NewEnrichmentService(gen, zap.NewNop())

	result := svc.GenerateLessonContent(context.Background(), testLessonData())

	if result.Source != dto.SourceAI {
		t.Errorf("代码块包裹的 JSON 应可解析，实际 fuente=%s", result.Source)
	}
	if result.Content.Summary != "Clase de repaso general" {
		t.Errorf("resumen 不符: %s", result.Content.Summary)
	}
}

func TestEnrichmentService_ProviderError(t *testing.T) {
	gen := &mockTextGenerator{err: errors.New("timeout")}
	svc := NewEnrichmentService(gen, zap.NewNop())

	result := svc.GenerateLessonContent(context.Background(), testLessonData())

	if result.Source != dto.SourceFallback {
		t.Errorf("期望 fuente=plantilla_error，实际=%s", result.Source)
	}
	if !result.Degraded {
		t.Error("供应商出错应标记为降级")
	}
	if result.Content.Summary != "Clase completada exitosamente" {
		t.Errorf("降级模板 resumen 不符: %s", result.Content.Summary)
	}
	// 两类模板措辞必须可区分
	if result.Content.Summary == unconfiguredSummary {
		t.Error("降级模板不应与未配置模板同文案")
	}
}

func TestEnrichmentService_BadJSON(t *testing.T) {
	gen := &mockTextGenerator{reply: "Lo siento, no puedo generar el JSON solicitado."}
	svc := NewEnrichmentService(gen, zap.NewNop())

	result := svc.GenerateLessonContent(context.Background(), testLessonData())

	if result.Source != dto.SourceFallback {
		t.Errorf("非 JSON 回复应走降级路径，实际 fuente=%s", result.Source)
	}
}

func TestEnrichmentService_MissingSummary(t *testing.T) {
	gen := &mockTextGenerator{reply: `{"vocabulario_repaso": ["hola"]}`}
	svc := NewEnrichmentService(gen, zap.NewNop())

	result := svc.GenerateLessonContent(context.Background(), testLessonData())

	if result.Source != dto.SourceFallback {
		t.Errorf("缺少 resumen 的 JSON 应走降级路径，实际 fuente=%s", result.Source)
	}
}

// ── Prompt 构造 ──

func TestEnrichmentService_PromptContainsLessonData(t *testing.T) {
	gen := &mockTextGenerator{reply: `{"resumen": "ok"}`}
	svc := NewEnrichmentService(gen, zap.NewNop())

	svc.GenerateLessonContent(context.Background(), testLessonData())

	if gen.calls != 1 {
		t.Fatalf("期望调用一次供应商，实际=%d", gen.calls)
	}
	for _, want := range []string{"Lucía", "A2", "Los colores y la ropa", "camisa, falda, azul"} {
		if !strings.Contains(gen.lastPrompt, want) {
			t.Errorf("prompt 应包含 %q", want)
		}
	}
	// 未填写的字段使用占位文案
	if !strings.Contains(gen.lastPrompt, "Ninguna mencionada") {
		t.Error("未填写的困难点应使用占位文案")
	}
	if !strings.Contains(gen.lastPrompt, "Sin notas adicionales") {
		t.Error("未填写的教师备注应使用占位文案")
	}
}
