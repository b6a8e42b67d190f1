package wire

import (
	"crime-report/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireDebug exposes introspection routes; DEBUG_ROUTES=false leaves them out.
func wireDebug(r chi.Router, debugHandler *adaptor.DebugHandler) {
	r.Route("/debug", func(r chi.Router) {
		r.Get("/database-info", debugHandler.DatabaseInfo)
		r.Get("/users-count", debugHandler.UsersCount)
		r.Get("/tables", debugHandler.Tables)
	})
}
