package auth

import (
	"net/http"
	"time"

	"github.com/empowered-auth/auth-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// SetupRoutes mounts the auth endpoints. The whole surface sits behind a
// per-IP rate limit to slow down credential stuffing.
func (h *Handler) SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RateLimit(rate.Every(time.Second), 10))

	r.Post("/login", h.LoginHandler)
	r.Post("/google-verify", h.GoogleVerifyHandler)
	r.Post("/complete-profile", h.CompleteProfileHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(h))
		r.Get("/me", h.MeHandler)
		r.Post("/logout", h.LogoutHandler)
	})

	return r
}
