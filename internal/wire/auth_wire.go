package wire

import (
	"net/http"

	"crime-report/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, limited func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.With(limited).Post("/send-otp", authHandler.SendOTP)
		r.With(limited).Post("/verify-otp", authHandler.VerifyOTP)
		r.With(limited).Post("/login", authHandler.Login)
		r.Post("/signup", authHandler.Signup)
	})
}
