package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/rufoabrahamguyo/king-taper/internal/audit"
	"github.com/rufoabrahamguyo/king-taper/internal/cache"
	"github.com/rufoabrahamguyo/king-taper/internal/config"
	"github.com/rufoabrahamguyo/king-taper/internal/handlers"
	infraRepo "github.com/rufoabrahamguyo/king-taper/internal/infra/repository"
	"github.com/rufoabrahamguyo/king-taper/internal/ledger"
	"github.com/rufoabrahamguyo/king-taper/internal/middleware"
	"github.com/rufoabrahamguyo/king-taper/internal/timezone"
)

var startedAt = time.Now()

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ------------------------------
	// Infra singletons
	// ------------------------------
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availCache := cache.New(rdb, time.Minute)

	bookingLedger := ledger.New(bookingRepo, ledger.Options{
		Hours:              cfg.BusinessHours(),
		Catalog:            cfg.Catalog(),
		LeadTimeMin:        cfg.LeadTimeMin,
		Location:           timezone.Location(cfg.Timezone),
		Cache:              availCache,
		Audit:              auditDispatcher,
		ValidateAdminEdits: cfg.AdminEditValidates,
	})

	// ------------------------------
	// Handlers
	// ------------------------------
	authHandler := handlers.NewAuthHandler(cfg)
	bookingHandler := handlers.NewBookingHandler(bookingLedger)
	adminHandler := handlers.NewAdminHandler(bookingLedger)

	// ------------------------------
	// Static pages
	// ------------------------------
	r.StaticFile("/", "./web/index.html")
	r.StaticFile("/admin", "./web/admin.html")
	r.Static("/assets", "./web/assets")

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ------------------------------
	// API
	// ------------------------------
	api := r.Group("/api")
	api.Use(middleware.RateLimit(rdb, cfg.RateLimitMax, cfg.RateLimitWindow))
	{
		api.GET("/health", healthHandler(db, rdb, cfg))

		// Public booking flow
		api.POST("/book", bookingHandler.Create)
		api.GET("/available-times", bookingHandler.AvailableTimes)
		api.GET("/booked-times", bookingHandler.BookedTimes)
		api.GET("/service-duration/:service", bookingHandler.ServiceDuration)

		// Admin session
		api.POST("/admin/login", authHandler.Login)
		api.POST("/admin/logout", authHandler.Logout)
		api.GET("/admin/check", authHandler.Check)

		// Admin API
		secured := api.Group("/admin")
		secured.Use(middleware.AdminAuth(cfg))
		{
			secured.GET("/bookings", adminHandler.ListBookings)
			secured.PUT("/bookings/:id", adminHandler.UpdateBooking)
			secured.DELETE("/bookings/:id", adminHandler.DeleteBooking)

			secured.POST("/blocked-times", adminHandler.AddBlockedTime)
			secured.GET("/blocked-times", adminHandler.ListBlockedTimes)
			secured.DELETE("/blocked-times/:id", adminHandler.RemoveBlockedTime)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "API route not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})
}

func healthHandler(db *gorm.DB, rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		database := "connected"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			database = "disconnected"
		}

		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(c.Request.Context()).Err() != nil {
				redisStatus = "disconnected"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Env,
			"uptime":      time.Since(startedAt).Seconds(),
			"database":    database,
			"redis":       redisStatus,
		})
	}
}
