package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minstagram/minstagram-api/internal/middleware"
	"github.com/minstagram/minstagram-api/internal/pkg/jwt"
)

// Routes returns profile routes
func Routes(handler *Handler, jwtService *jwt.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Auth(jwtService))

	r.Get("/", handler.Get)
	r.Patch("/", handler.Update)
	r.Post("/avatar", handler.UpdateAvatar)
	r.Put("/password", handler.ChangePassword)

	return r
}
