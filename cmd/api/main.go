package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/minstagram/minstagram-api/internal/config"
	"github.com/minstagram/minstagram-api/internal/domain/auth"
	"github.com/minstagram/minstagram-api/internal/domain/feed"
	"github.com/minstagram/minstagram-api/internal/domain/photo"
	"github.com/minstagram/minstagram-api/internal/domain/profile"
	"github.com/minstagram/minstagram-api/internal/domain/upload"
	"github.com/minstagram/minstagram-api/internal/domain/user"
	"github.com/minstagram/minstagram-api/internal/middleware"
	"github.com/minstagram/minstagram-api/internal/pkg/database"
	"github.com/minstagram/minstagram-api/internal/pkg/imaging"
	"github.com/minstagram/minstagram-api/internal/pkg/jwt"
	"github.com/minstagram/minstagram-api/internal/pkg/storage"
	"github.com/minstagram/minstagram-api/internal/pkg/validator"
)

// viewTTL is how long an untouched feed or gallery view stays alive.
const viewTTL = 30 * time.Minute

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	validate := validator.New()
	processor := imaging.NewProcessor(imaging.DefaultConfig())

	// Repositories
	userRepo := user.NewRepository(db)
	photoRepo := photo.NewRepository(db)

	// Services
	authService := auth.NewService(userRepo, jwtService, redisClient)
	tracker := upload.NewTracker()
	uploadService := upload.NewService(photoRepo, userRepo, store, tracker, cfg.MaxUploadSize, log.Logger)
	views := feed.NewViews(photoRepo, viewTTL, log.Logger)
	profileService := profile.NewService(userRepo, store, processor, log.Logger)

	// Background maintenance
	stop := make(chan struct{})
	go tracker.Run(stop)
	go views.Run(stop)

	// Handlers
	authHandler := auth.NewHandler(authService, validate, log.Logger)
	uploadHandler := upload.NewHandler(uploadService, cfg.MaxUploadSize, log.Logger)
	feedHandler := feed.NewHandler(views, userRepo, log.Logger)
	profileHandler := profile.NewHandler(profileService, validate, log.Logger)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", auth.Routes(authHandler, jwtService))
		r.Mount("/photos", upload.PhotoRoutes(uploadHandler, jwtService))
		r.Mount("/uploads", upload.ProgressRoutes(uploadHandler, jwtService))
		r.Mount("/feed", feed.FeedRoutes(feedHandler, jwtService))
		r.Mount("/gallery", feed.GalleryRoutes(feedHandler, jwtService))
		r.Mount("/profile", profile.Routes(profileHandler, jwtService))
	})

	// Serve uploaded files directly when using local storage
	if cfg.StorageDriver == "local" {
		fs := http.StripPrefix("/files/", http.FileServer(http.Dir(cfg.LocalDir)))
		r.Get("/files/*", fs.ServeHTTP)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server stopped")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3Storage(storage.Config{
			S3Endpoint:  cfg.S3Endpoint,
			S3Region:    cfg.S3Region,
			S3AccessKey: cfg.S3AccessKey,
			S3SecretKey: cfg.S3SecretKey,
			S3Bucket:    cfg.S3Bucket,
			S3PublicURL: cfg.S3PublicURL,
		})
	}
	return storage.NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL)
}
