package wire

import (
	"net/http"

	"crime-report/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSOS(r chi.Router, sosHandler *adaptor.SOSHandler, limited func(http.Handler) http.Handler) {
	r.Route("/sos", func(r chi.Router) {
		r.With(limited).Post("/", sosHandler.Create)
		r.Get("/stats", sosHandler.Stats)
	})
}
