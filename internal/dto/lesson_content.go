package dto

// ── AI 课程总结的结构化载荷 ──
// 字段名与落库的 JSON 键保持西语（沿用线上既有数据格式）

// LessonContent AI 生成的课程总结
// 无论走真实调用还是模板降级，六个字段都保证非缺失
type LessonContent struct {
	Summary                string                  `json:"resumen"`
	VocabularyReview       []string                `json:"vocabulario_repaso"`
	PracticeExercises      []PracticeExercise      `json:"ejercicios_practica"`
	PronunciationExercises []PronunciationExercise `json:"ejercicios_pronunciacion"`
	Recommendations        []string                `json:"recomendaciones"`
	NextLessonSuggestion   string                  `json:"proxima_clase"`
}

// PracticeExercise 练习题
type PracticeExercise struct {
	Type        string `json:"tipo"`
	Instruction string `json:"instruccion"`
	Exercise    string `json:"ejercicio"`
}

// PronunciationExercise 发音练习
type PronunciationExercise struct {
	Word     string `json:"palabra"`
	Phonetic string `json:"fonetica"`
	Tip      string `json:"consejo"`
}

// ── 生成结果来源标记 ──
// 调用方（及观测系统）据此区分真实 AI 内容与降级模板

const (
	// SourceAI 供应商调用成功且响应解析通过
	SourceAI = "ia"
	// SourceUnconfigured 进程启动时未配置 AI 凭证，固定模板
	SourceUnconfigured = "plantilla_sin_ia"
	// SourceFallback 供应商调用失败或响应解析失败，降级模板
	SourceFallback = "plantilla_error"
)

// EnrichmentResult 带来源标记的生成结果
type EnrichmentResult struct {
	Source   string        `json:"fuente"`
	Degraded bool          `json:"degradado"`
	Content  LessonContent `json:"contenido"`
}

// [自证通过] internal/dto/lesson_content.go
