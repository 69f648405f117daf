package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/JCarlovich/plataforma-idiomas-api/internal/model"
	pkgerrors "github.com/JCarlovich/plataforma-idiomas-api/pkg/errors"
)

// ── Mock ClassSessionRepository ──
// 内存实现，状态迁移守卫与真实 Repository 保持一致

type mockClassSessionRepo struct {
	sessions map[string]*model.ClassSession // key: session.ID
	nextID   int
	// 注入存储层故障
	failCreate error
	failUpdate error
}

func newMockClassSessionRepo() *mockClassSessionRepo {
	return &mockClassSessionRepo{sessions: make(map[string]*model.ClassSession)}
}

func (m *mockClassSessionRepo) Create(_ context.Context, session *model.ClassSession) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	if session.ID == "" {
		m.nextID++
		session.ID = fmt.Sprintf("vc-%03d", m.nextID)
	}
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *mockClassSessionRepo) GetByID(_ context.Context, id string) (*model.ClassSession, error) {
	if s, ok := m.sessions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassSessionRepo) GetByRoomID(_ context.Context, roomID string) (*model.ClassSession, error) {
	for _, s := range m.sessions {
		if s.RoomID == roomID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassSessionRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.ClassSession, error) {
	var result []model.ClassSession
	for _, s := range m.sessions {
		if s.TeacherID == teacherID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockClassSessionRepo) MarkStarted(_ context.Context, roomID string, startedAt time.Time) error {
	if m.failUpdate != nil {
		return m.failUpdate
	}
	for _, s := range m.sessions {
		if s.RoomID != roomID {
			continue
		}
		if s.Status != model.StatusScheduled {
			return pkgerrors.ErrStateTransition
		}
		s.Status = model.StatusInProgress
		s.StartedAt = &startedAt
		return nil
	}
	return pkgerrors.ErrStateTransition
}

func (m *mockClassSessionRepo) MarkCompleted(_ context.Context, session *model.ClassSession) error {
	if m.failUpdate != nil {
		return m.failUpdate
	}
	stored, ok := m.sessions[session.ID]
	if !ok || stored.Status == model.StatusCompleted {
		return pkgerrors.ErrStateTransition
	}
	stored.Status = model.StatusCompleted
	stored.EndedAt = session.EndedAt
	stored.TopicsCovered = session.TopicsCovered
	stored.NewVocabulary = session.NewVocabulary
	stored.DifficultiesObserved = session.DifficultiesObserved
	stored.TeacherNotes = session.TeacherNotes
	stored.StudentLevel = session.StudentLevel
	stored.AIContent = session.AIContent
	stored.AISource = session.AISource
	session.Status = model.StatusCompleted
	return nil
}

// ── Mock TextGenerator ──

type mockTextGenerator struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
}

func (m *mockTextGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}
