package handlers

import (
	"SpindleTracker/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// ExportHandler отдаёт обе таблицы одним файлом.
type ExportHandler struct {
	Service *service.ExportService
	Logger  *zap.SugaredLogger
}

func NewExportHandler(svc *service.ExportService, logger *zap.SugaredLogger) *ExportHandler {
	return &ExportHandler{Service: svc, Logger: logger}
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.Export()
	if err != nil {
		internalError(w, h.Logger, "Export: failed", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.ExportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
