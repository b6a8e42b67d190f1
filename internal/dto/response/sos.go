package response

import (
	"time"

	"crime-report/internal/data/entity"
)

type SOSResponse struct {
	ID        uint      `json:"id"`
	UserEmail *string   `json:"user_email"`
	Lat       string    `json:"lat"`
	Long      string    `json:"long"`
	CreatedAt time.Time `json:"created_at"`
}

type SOSStatsResponse struct {
	TotalAlerts int64 `json:"total_alerts"`
	TodayAlerts int64 `json:"today_alerts"`
}

func SOSToResponse(alert *entity.SOSAlert) SOSResponse {
	return SOSResponse{
		ID:        alert.ID,
		UserEmail: alert.UserEmail,
		Lat:       alert.Lat,
		Long:      alert.Long,
		CreatedAt: alert.CreatedAt,
	}
}
