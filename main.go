package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"core"
	"core/cache"
	"core/events"
	"core/handlers"
	"pingpong-ladder/config"
	_ "pingpong-ladder/docs" // Swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Ping-Pong Ladder API
// @version         1.0
// @description     Players, games, challenges and Elo ratings of a ping-pong ladder.

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := config.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if err := config.ConnectDatabase(cfg, logger); err != nil {
		return err
	}
	defer func() { _ = config.CloseDatabase() }()

	leaderboardCache, closeCache := setupCache(cfg, logger)
	defer closeCache()

	publisher := setupPublisher(cfg, logger)
	defer func() { _ = publisher.Close() }()

	module := core.NewModule(config.DB, core.Options{
		DefaultRating:     cfg.DefaultRating,
		DefaultGameCount:  cfg.DefaultGameCount,
		StaleChallengeAge: cfg.StaleChallengeAge,
		Publisher:         publisher,
		Cache:             leaderboardCache,
		Logger:            logger,
	})

	gin.SetMode(cfg.GinMode)
	r := newRouter(cfg, module, logger)

	if cfg.SchedulerEnabled {
		if err := module.StartScheduler(); err != nil {
			return err
		}
		defer module.StopScheduler()
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	logger.Info("server started", slog.String("addr", server.Addr))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newRouter(cfg *config.Config, module *core.Module, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		handlers.RequestID(),
		handlers.Logging(logger),
		handlers.Recovery(logger),
		cors.New(corsConfig(cfg.CORSAllowedOrigins)),
	)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	module.SetupRoutes(r)

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", handlers.RequestIDHeader},
		ExposeHeaders: []string{handlers.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// setupCache connects to Redis when REDIS_URL is set. Without it, or when
// Redis is unreachable, every read goes to the database.
func setupCache(cfg *config.Config, logger *slog.Logger) (cache.LeaderboardCache, func()) {
	if cfg.RedisURL == "" {
		return cache.Nop{}, func() {}
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.URL = cfg.RedisURL
	cacheCfg.LeaderboardTTL = cfg.LeaderboardCacheTTL

	redisCache, err := cache.NewRedis(cacheCfg)
	if err != nil {
		logger.Warn("redis unavailable, leaderboard cache disabled", slog.String("error", err.Error()))
		return cache.Nop{}, func() {}
	}

	logger.Info("leaderboard cache enabled", slog.Duration("ttl", cacheCfg.LeaderboardTTL))
	return redisCache, func() { _ = redisCache.Close() }
}

// setupPublisher sends events to AMQP when AMQP_URL is set and logs them
// otherwise.
func setupPublisher(cfg *config.Config, logger *slog.Logger) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NewLogPublisher(logger)
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
	if err != nil {
		logger.Warn("amqp unavailable, logging events instead", slog.String("error", err.Error()))
		return events.NewLogPublisher(logger)
	}

	logger.Info("publishing events", slog.String("exchange", cfg.AMQPExchange))
	return publisher
}
