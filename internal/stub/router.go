// Package stub is an in-process double of the remote broadcast service.
// It implements the REST contract the client consumes so the client can
// be exercised end to end in development and tests; the real server
// remains external and authoritative.
package stub

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/infocast/infocast/internal/stub/handler"
	"github.com/infocast/infocast/internal/stub/memory"
	"github.com/infocast/infocast/internal/stub/metrics"
	"github.com/infocast/infocast/internal/stub/middleware"
)

// Options configures the stub router.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	// Registry receives the request metrics. Defaults to a fresh
	// registry so repeated routers in one process don't collide.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(store *memory.Store, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	metrics.MustRegister(opts.Registry)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "infocast_stub",
		Registerer: opts.Registry,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(store, opts.JWTSecret, opts.TokenTTL)
	broadcastHandler := handler.NewBroadcastHandler(store)
	authRequired := middleware.Auth(opts.JWTSecret)

	// --- Identity routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/me", authHandler.Me, authRequired)
	e.PUT("/api/auth/me", authHandler.UpdateMe, authRequired)

	// --- Broadcast routes ---
	e.GET("/api/broadcasts", broadcastHandler.List)
	e.GET("/api/broadcasts/stats/summary", broadcastHandler.Stats)
	e.GET("/api/broadcasts/:id", broadcastHandler.Get)
	e.POST("/api/broadcasts", broadcastHandler.Create, authRequired)
	e.PUT("/api/broadcasts/:id", broadcastHandler.Update, authRequired)
	e.DELETE("/api/broadcasts/:id", broadcastHandler.Delete, authRequired)

	// --- Operational routes ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: opts.Registry,
	}))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}
