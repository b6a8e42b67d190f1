package wire

import (
	"crime-report/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireComplaint(r chi.Router, complaintHandler *adaptor.ComplaintHandler) {
	r.Route("/complaints", func(r chi.Router) {
		r.Post("/", complaintHandler.Create)
		r.Get("/my-complaints", complaintHandler.MyComplaints)
		r.Get("/stats", complaintHandler.Stats)
		r.Get("/recent", complaintHandler.Recent)
	})
}
