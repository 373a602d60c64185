package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minstagram/minstagram-api/internal/middleware"
	"github.com/minstagram/minstagram-api/internal/pkg/jwt"
)

// Routes returns auth routes
func Routes(handler *Handler, jwtService *jwt.Service) http.Handler {
	r := chi.NewRouter()

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/refresh", handler.Refresh)
	r.Post("/logout", handler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))
		r.Get("/me", handler.Me)
	})

	return r
}
