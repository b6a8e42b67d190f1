package adaptor

import (
	"net/http"

	"crime-report/internal/dto/request"
	"crime-report/internal/usecase"
	"crime-report/pkg/utils"

	"go.uber.org/zap"
)

type SOSHandler struct {
	service usecase.SOSService
	log     *zap.Logger
}

func NewSOSHandler(service usecase.SOSService, log *zap.Logger) *SOSHandler {
	return &SOSHandler{
		service: service,
		log:     log.With(zap.String("handler", "sos")),
	}
}

// Create handles POST /sos/
func (h *SOSHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.SOSRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	alert, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create SOS alert")
		return
	}

	utils.ResponseSuccess(w, "SOS alert received", alert)
}

// Stats handles GET /sos/stats
func (h *SOSHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get SOS stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
