package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"crime-report/internal/data/entity"
	"crime-report/internal/data/repository"
	"crime-report/internal/wire"
	"crime-report/pkg/database"
	"crime-report/pkg/mailer"
	"crime-report/pkg/media"
	"crime-report/pkg/ratelimit"
	"crime-report/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	config, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database, config.App.Debug)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db, entity.Models()...); err != nil {
		logger.Error("Failed to migrate database", zap.Error(err))
		return err
	}
	logger.Info("Database connected successfully", zap.String("database", database.MaskURL(config.Database.URL)))

	store, err := newMediaStore(config.Media)
	if err != nil {
		logger.Error("Failed to init media store", zap.Error(err))
		return err
	}
	logger.Info("Media store ready", zap.String("backend", store.Name()))

	limiter, closeLimiter, err := newLimiter(ctx, config.RateLimit, logger)
	if err != nil {
		return err
	}
	defer closeLimiter()

	app := wire.Wiring(wire.Deps{
		Repo:    repository.NewRepository(db, logger),
		Store:   store,
		Mailer:  mailer.NewSMTPSender(config.Email, logger),
		Limiter: limiter,
	}, config, logger)

	return APIServer(ctx, app.Router, config.App.Port, logger)
}

// APIServer serves route until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func APIServer(ctx context.Context, route *chi.Mux, port string, logger *zap.Logger) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           route,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}

	logger.Info("Server shutdown completed")
	return nil
}

func newMediaStore(config utils.MediaConfig) (media.Store, error) {
	switch config.Backend {
	case utils.MediaBackendCloudinary:
		return media.NewCloudinaryStore(config.CloudinaryURL, config.Folder)
	case utils.MediaBackendLocal:
		return media.NewLocalStore(config.Dir, config.URLPrefix)
	default:
		return nil, fmt.Errorf("unknown MEDIA_BACKEND %q", config.Backend)
	}
}

// newLimiter shares counters through Redis when REDIS_URL is set and keeps
// them in process otherwise.
func newLimiter(ctx context.Context, config utils.RateLimitConfig, logger *zap.Logger) (ratelimit.Limiter, func(), error) {
	limits := ratelimit.Config{
		Requests: config.Requests,
		Window:   time.Duration(config.WindowSeconds) * time.Second,
	}

	if config.RedisURL == "" {
		logger.Info("Rate limiting in process", zap.Int("requests", limits.Requests), zap.Duration("window", limits.Window))
		return ratelimit.NewMemoryLimiter(limits), func() {}, nil
	}

	client, err := ratelimit.NewRedisClient(ctx, config.RedisURL)
	if err != nil {
		logger.Error("Failed to connect to Redis", zap.Error(err))
		return nil, nil, err
	}

	logger.Info("Rate limiting through Redis", zap.Int("requests", limits.Requests), zap.Duration("window", limits.Window))
	return ratelimit.NewRedisLimiter(client, limits), func() { _ = client.Close() }, nil
}
