package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"novelhub/database"
	"novelhub/internal/config"
	"novelhub/internal/handler"
	"novelhub/internal/middleware"
	"novelhub/internal/reader"
	"novelhub/internal/repository"
	"novelhub/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database_connect_failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	novelRepo := repository.NewNovelRepo(db)
	chapterRepo := repository.NewChapterRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	readingEventRepo := repository.NewReadingEventRepository(db)

	// Redis last-read cache; the durable store covers a cold or absent cache
	progressCache, err := reader.NewProgressRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.ProgressTTL)
	if err != nil {
		logger.Warn("redis_unavailable", "addr", cfg.RedisAddr, "error", err)
	}

	// Background writer for fire-and-forget view counts and progress
	writer := reader.NewWriter(cfg.WriterWorkers, logger)
	writer.Start()

	progressStore := reader.NewProgressStore(progressCache, libraryRepo, logger)
	counter := reader.NewViewCounter(chapterRepo, novelRepo, writer, logger)
	resolver := reader.NewSessionResolver(novelRepo, chapterRepo, progressStore, writer, logger)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Completed chapters bump the chapter counter; signed-in completions
	// also feed the daily reading stats.
	mounts := reader.NewMountRegistry(cfg.MountTTL, func(comp reader.Completion) {
		counter.ChapterCompleted(comp.NovelID, comp.ChapterID)
		if comp.UserID == "" {
			return
		}
		userID := comp.UserID
		day := time.Now()
		writer.Submit("reading_event", func(taskCtx context.Context) error {
			return readingEventRepo.RecordCompletion(taskCtx, userID, day)
		})
	}, logger)
	go mounts.StartJanitor(rootCtx, cfg.MountTTL/4)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	novelService := service.NewNovelService(novelRepo, chapterRepo)
	libraryService := service.NewLibraryService(libraryRepo, novelRepo, progressStore)
	profileService := service.NewProfileService(userRepo, libraryRepo, readingEventRepo)

	loginLimiter := middleware.NewLoginRateLimiter(cfg.LoginRatePerMin, cfg.LoginRateBurst)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-rootCtx.Done():
				return
			case <-ticker.C:
				loginLimiter.Cleanup()
			}
		}
	}()

	requireAuth := middleware.AuthMiddleware(authService)
	optionalAuth := middleware.OptionalAuthMiddleware(authService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authHandler := handler.NewAuthHandler(authService, int64(cfg.AccessTokenTTL.Seconds()))
	authHandler.RegisterRoutes(api.Group("/auth"), loginLimiter.Middleware())

	novelHandler := handler.NewNovelHandler(novelService, libraryService, progressStore, counter)
	novelHandler.RegisterRoutes(api.Group("/novels"), requireAuth, optionalAuth)

	readerHandler := handler.NewReaderHandler(resolver, mounts)
	readerHandler.RegisterRoutes(api, optionalAuth)

	libraryHandler := handler.NewLibraryHandler(libraryService)
	libraryHandler.RegisterRoutes(api.Group("/library"), requireAuth)

	profileHandler := handler.NewProfileHandler(profileService)
	profileHandler.RegisterRoutes(api.Group("/profile"), requireAuth)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		logger.Info("server_starting", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("shutdown_signal_received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}

	// stop background work after in-flight requests have drained
	rootCancel()
	writer.Shutdown()
	if progressCache != nil {
		if err := progressCache.Close(); err != nil {
			logger.Warn("redis_close_failed", "error", err)
		}
	}
	logger.Info("server_stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
