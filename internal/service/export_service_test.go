package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/JCarlovich/plataforma-idiomas-api/internal/model"
	"github.com/JCarlovich/plataforma-idiomas-api/internal/repository"
)

func setupTestExportService() (ExportService, *mockClassSessionRepo) {
	classRepo := newMockClassSessionRepo()
	repo := &repository.Repository{ClassSession: classRepo}
	svc := NewExportService(repo, zap.NewNop())
	return svc, classRepo
}

func seedSession(classRepo *mockClassSessionRepo, teacherID, roomID string) *model.ClassSession {
	session := &model.ClassSession{
		TeacherID:    teacherID,
		StudentName:  "Carlos",
		StudentEmail: "alumno@example.com",
		RoomID:       roomID,
		VideoRoomURL: "https://meet.jit.si/" + roomID,
		Status:       model.StatusScheduled,
		CreatedAt:    time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}
	classRepo.Create(context.Background(), session)
	return session
}

// ── SessionsExcel 测试 ──

func TestExportService_SessionsExcel(t *testing.T) {
	svc, classRepo := setupTestExportService()
	seedSession(classRepo, "prof-maria", "clase-prof-maria-1")
	seedSession(classRepo, "prof-maria", "clase-prof-maria-2")

	buf, filename, err := svc.SessionsExcel(context.Background(), "prof-maria")
	if err != nil {
		t.Fatalf("SessionsExcel 应成功: %v", err)
	}
	if !strings.HasPrefix(filename, "clases_prof-maria_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名格式不符: %s", filename)
	}

	// 产物应是可解析的工作簿，含表头+两行数据
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出文件无法解析: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Clases")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("期望 3 行（表头+2 数据行），实际=%d", len(rows))
	}
	if rows[0][0] != "Fecha" || rows[0][1] != "Alumno" {
		t.Errorf("表头不符: %v", rows[0])
	}
	if rows[1][1] != "Carlos" {
		t.Errorf("期望数据行 Alumno=Carlos，实际=%v", rows[1])
	}
}

func TestExportService_SessionsExcel_NoClasses(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.SessionsExcel(context.Background(), "prof-sin-clases")
	if !errors.Is(err, ErrExportNoClasses) {
		t.Errorf("期望 ErrExportNoClasses，实际: %v", err)
	}
}

// ── SessionICS 测试 ──

func TestExportService_SessionICS(t *testing.T) {
	svc, classRepo := setupTestExportService()
	seedSession(classRepo, "prof-maria", "clase-prof-maria-1")

	data, filename, err := svc.SessionICS(context.Background(), "clase-prof-maria-1")
	if err != nil {
		t.Fatalf("SessionICS 应成功: %v", err)
	}
	if filename != "clase-prof-maria-1.ics" {
		t.Errorf("文件名不符: %s", filename)
	}

	ics := string(data)
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:REQUEST",
		"clase-prof-maria-1",
		"https://meet.jit.si/clase-prof-maria-1",
		"alumno@example.com",
		"Clase de idiomas con Carlos",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("日历邀请应包含 %q", want)
		}
	}
}

func TestExportService_SessionICS_NotFound(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.SessionICS(context.Background(), "clase-inexistente-1")
	if !errors.Is(err, ErrClassNotFound) {
		t.Errorf("期望 ErrClassNotFound，实际: %v", err)
	}
}
