package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/joho/godotenv"

	"github.com/pixelsandpetals/content-service/pkg/sitecontent"
	"github.com/pixelsandpetals/content-service/pkg/sitecontent/api"
	"github.com/pixelsandpetals/content-service/pkg/sitecontent/config"
)

func main() {
	// Load .env when present; real environment wins
	_ = godotenv.Load()

	logger := httplog.NewLogger("content-service", httplog.Options{
		LogLevel: slog.LevelInfo,
		Concise:  true,
	})
	slog.SetDefault(logger.Logger)

	serverConfig, err := config.Load(config.WithEnv(""))
	if err != nil {
		slog.Error("Failed to load server configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	svc, err := serverConfig.BuildService(ctx)
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: routes(svc, serverConfig, logger),
	}

	go func() {
		slog.Info("Content API starting",
			"port", serverConfig.Port,
			"environment", serverConfig.Environment,
			"repository", serverConfig.RepositoryType)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

func routes(svc sitecontent.Service, serverConfig *config.ServerConfig, logger *httplog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for the web frontend during development
	if serverConfig.Environment == "development" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		}))
	}

	r.Get("/health", handleHealth(serverConfig))

	r.Mount("/api/content", api.NewContentHandler(svc).Routes())

	return r
}

func handleHealth(serverConfig *config.ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{
			"status":      "healthy",
			"environment": serverConfig.Environment,
			"repository":  serverConfig.RepositoryType,
		})
	}
}
