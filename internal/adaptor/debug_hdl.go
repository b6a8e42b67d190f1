package adaptor

import (
	"net/http"

	"crime-report/internal/usecase"
	"crime-report/pkg/utils"

	"go.uber.org/zap"
)

type DebugHandler struct {
	service usecase.DebugService
	log     *zap.Logger
}

func NewDebugHandler(service usecase.DebugService, log *zap.Logger) *DebugHandler {
	return &DebugHandler{
		service: service,
		log:     log.With(zap.String("handler", "debug")),
	}
}

// DatabaseInfo handles GET /debug/database-info
func (h *DebugHandler) DatabaseInfo(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.DatabaseInfo(r.Context()))
}

// UsersCount handles GET /debug/users-count
func (h *DebugHandler) UsersCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.UsersCount(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "count users")
		return
	}
	utils.ResponseSuccess(w, "success", count)
}

// Tables handles GET /debug/tables
func (h *DebugHandler) Tables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.Tables(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list tables")
		return
	}
	utils.ResponseSuccess(w, "success", tables)
}
