package adaptor

import (
	"errors"
	"net/http"

	"crime-report/internal/usecase"
	"crime-report/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Complaint *ComplaintHandler
	SOS       *SOSHandler
	Debug     *DebugHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Complaint: NewComplaintHandler(service.Complaint, config.Media.MaxUploadMB, log),
		SOS:       NewSOSHandler(service.SOS, log),
		Debug:     NewDebugHandler(service.Debug, log),
	}
}

// handleServiceError maps usecase error kinds to status codes. Unknown
// errors become a generic 500 so driver messages never reach the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrUnverified),
		errors.Is(err, usecase.ErrInvalidOTP):
		log.Warn(operation+" failed - rejected", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case errors.Is(err, usecase.ErrUpload):
		log.Error(operation+" failed - upload", zap.Error(err))
		utils.ResponseInternalError(w, errMsg)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
