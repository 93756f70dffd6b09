package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/storefront/imgupload/internal/config"
	"github.com/storefront/imgupload/internal/domain/image"
	"github.com/storefront/imgupload/internal/domain/upload"
	"github.com/storefront/imgupload/internal/middleware"
	"github.com/storefront/imgupload/internal/pkg/imaging"
	"github.com/storefront/imgupload/internal/pkg/logger"
	pkgresponse "github.com/storefront/imgupload/internal/pkg/response"
	"github.com/storefront/imgupload/internal/pkg/storage"
	"github.com/storefront/imgupload/internal/web"
)

func main() {
	cfg := config.Load()

	logFile, err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
		LogFile:     cfg.LogFile,
		Service:     "imgupload",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}
	defer logFile.Close()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("upload_dir", cfg.UploadDir).
		Str("thumbnail_dir", cfg.ThumbnailDir).
		Str("max_file_size", humanize.IBytes(uint64(cfg.MaxFileSize))).
		Int("max_batch_files", cfg.MaxBatchFiles).
		Msg("Starting image upload server")

	// ---------- Storage ----------
	layout, err := storage.NewLayout(cfg.UploadDir, cfg.ThumbnailDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare upload directories")
	}

	// ---------- Services ----------
	processor := imaging.NewProcessor(imaging.Config{
		ThumbWidth:     cfg.ThumbnailWidth,
		ThumbHeight:    cfg.ThumbnailHeight,
		Quality:        cfg.JPEGQuality,
		PNGCompression: imaging.DefaultConfig().PNGCompression,
	})

	uploadHandler := upload.NewHandler(upload.NewService(layout, processor, cfg.MaxFileSize), cfg.MaxBatchFiles)
	imageHandler := image.NewHandler(image.NewService(layout))

	// ---------- Router ----------
	r := newRouter(cfg, uploadHandler, imageHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exited properly")
}

func newRouter(cfg *config.Config, uploadHandler *upload.Handler, imageHandler *image.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		uploadHandler.RegisterRoutes(r)
		imageHandler.RegisterRoutes(r)
	})

	// Gallery page and its assets
	r.Get("/", web.Index)
	r.Handle("/static/*", http.StripPrefix("/static", web.StaticFileServer()))

	// Stored files. The thumbnail route is more specific and wins even when the
	// thumbnail directory lives outside the upload directory.
	r.Handle(storage.ThumbnailsURL+"/*", http.StripPrefix(storage.ThumbnailsURL, web.FilesHandler(cfg.ThumbnailDir)))
	r.Handle(storage.OriginalsURL+"/*", http.StripPrefix(storage.OriginalsURL, web.FilesHandler(cfg.UploadDir)))

	return r
}
