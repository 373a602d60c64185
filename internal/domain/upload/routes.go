package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minstagram/minstagram-api/internal/middleware"
	"github.com/minstagram/minstagram-api/internal/pkg/jwt"
)

// PhotoRoutes returns the photo upload route
func PhotoRoutes(handler *Handler, jwtService *jwt.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Auth(jwtService))
	r.Post("/", handler.Upload)
	return r
}

// ProgressRoutes returns the upload progress route
func ProgressRoutes(handler *Handler, jwtService *jwt.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Auth(jwtService))
	r.Get("/{id}/progress", handler.Progress)
	return r
}
