package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"crime-report/internal/dto/request"
	"crime-report/internal/usecase"
	"crime-report/pkg/media"
	"crime-report/pkg/utils"

	"go.uber.org/zap"
)

// parts larger than this spill to temp files while parsing
const multipartMemory = 32 << 20

type ComplaintHandler struct {
	service        usecase.ComplaintService
	maxUploadBytes int64
	log            *zap.Logger
}

func NewComplaintHandler(service usecase.ComplaintService, maxUploadMB int64, log *zap.Logger) *ComplaintHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 50
	}
	return &ComplaintHandler{
		service:        service,
		maxUploadBytes: maxUploadMB << 20,
		log:            log.With(zap.String("handler", "complaint")),
	}
}

// Create handles POST /complaints/ (multipart/form-data)
func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			utils.ResponseTooLarge(w, "Upload exceeds the size limit")
			return
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := request.CreateComplaintRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		CrimeType:   r.FormValue("crime_type"),
		UserEmail:   r.FormValue("user_email"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	image, closeImage, err := formFile(r, "image", media.KindImage)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid image upload", nil)
		return
	}
	defer closeImage()

	video, closeVideo, err := formFile(r, "video", media.KindVideo)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid video upload", nil)
		return
	}
	defer closeVideo()

	req.Image, req.Video = image, video

	complaint, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create complaint")
		return
	}

	utils.ResponseSuccess(w, "Complaint created successfully", complaint)
}

// formFile returns nil for an absent or empty part.
func formFile(r *http.Request, field string, kind media.Kind) (*media.File, func(), error) {
	noop := func() {}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	if header.Filename == "" && header.Size == 0 {
		file.Close()
		return nil, noop, nil
	}

	return &media.File{
		Filename: header.Filename,
		Kind:     kind,
		Content:  file,
	}, func() { _ = file.Close() }, nil
}

// MyComplaints handles GET /complaints/my-complaints?user_email=
func (h *ComplaintHandler) MyComplaints(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("user_email")
	if email == "" {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"user_email": "This field is required"})
		return
	}

	complaints, err := h.service.MyComplaints(r.Context(), email)
	if err != nil {
		handleServiceError(w, h.log, err, "get my complaints")
		return
	}

	utils.ResponseSuccess(w, "success", complaints)
}

// Stats handles GET /complaints/stats
func (h *ComplaintHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get complaint stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// Recent handles GET /complaints/recent?limit=
func (h *ComplaintHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), usecase.DefaultRecentLimit)

	complaints, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		handleServiceError(w, h.log, err, "get recent complaints")
		return
	}

	utils.ResponseSuccess(w, "success", complaints)
}
