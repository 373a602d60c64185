package feed

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minstagram/minstagram-api/internal/middleware"
	"github.com/minstagram/minstagram-api/internal/pkg/jwt"
)

// FeedRoutes returns feed routes
func FeedRoutes(handler *Handler, jwtService *jwt.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Auth(jwtService))

	r.Get("/", handler.Feed)
	r.Post("/photos/{id}/like", handler.Like)
	r.Post("/photos/{id}/comments", handler.Comment)
	r.Post("/photos/{id}/expand", handler.ExpandFeed)
	r.Post("/photos/{id}/report", handler.Report)

	return r
}

// GalleryRoutes returns gallery routes
func GalleryRoutes(handler *Handler, jwtService *jwt.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Auth(jwtService))

	r.Get("/", handler.Gallery)
	r.Post("/photos/{id}/expand", handler.ExpandGallery)

	return r
}
