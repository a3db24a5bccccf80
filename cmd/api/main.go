package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/rufoabrahamguyo/king-taper/internal/config"
	dbpkg "github.com/rufoabrahamguyo/king-taper/internal/db"
	"github.com/rufoabrahamguyo/king-taper/internal/logger"
	"github.com/rufoabrahamguyo/king-taper/internal/middleware"
	"github.com/rufoabrahamguyo/king-taper/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.Init(cfg.IsProduction())
	defer log.Sync()

	db := dbpkg.NewDB(cfg)
	rdb := newRedis(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL))

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Info("server running",
		zap.String("addr", cfg.Addr()),
		zap.String("environment", cfg.Env),
		zap.String("frontend_url", cfg.FrontendURL),
	)
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// newRedis connects the optional cache/rate-limit backend. The service
// runs fine without it; a missing or unreachable Redis just disables
// caching and throttling.
func newRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis unavailable, continuing without cache", zap.Error(err))
		return nil
	}

	return rdb
}
