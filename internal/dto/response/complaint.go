package response

import (
	"time"

	"crime-report/internal/data/entity"
)

type ComplaintResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CrimeType   string    `json:"crime_type"`
	UserEmail   string    `json:"user_email"`
	ImagePath   *string   `json:"image_path"`
	VideoPath   *string   `json:"video_path"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type ComplaintStatsResponse struct {
	TotalComplaints int64 `json:"total_complaints"`
	TodayComplaints int64 `json:"today_complaints"`
}

func ComplaintToResponse(c *entity.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CrimeType:   c.CrimeType,
		UserEmail:   c.UserEmail,
		ImagePath:   c.ImagePath,
		VideoPath:   c.VideoPath,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
	}
}

func ComplaintsToResponse(complaints []*entity.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(complaints))
	for _, c := range complaints {
		out = append(out, ComplaintToResponse(c))
	}
	return out
}
