package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/vibecast/internal/infra/config"
)

// eventsPathPattern stays uncompressed so the websocket upgrade gets the raw connection.
const eventsPathPattern = `^/api/v1/sessions/[^/]+/events$`

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	logger = logger.With("component", "http.router")

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		metricsMiddleware(),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		gzip.Gzip(gzip.DefaultCompression,
			// promhttp negotiates its own encoding.
			gzip.WithExcludedPaths([]string{cfg.Metrics.Path}),
			gzip.WithExcludedPathsRegexs([]string{eventsPathPattern}),
		),
		errorHandlingMiddleware(logger),
	)

	router.GET("/healthz", handler.Health)
	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api/v1")
	{
		api.GET("/locations", handler.SearchLocations)
		api.GET("/weather", handler.CurrentWeather)
		api.POST("/advice", handler.Advice)

		sessions := api.Group("/sessions")
		sessions.POST("", handler.CreateSession)
		sessions.GET("/:id", handler.GetSession)
		sessions.DELETE("/:id", handler.CloseSession)
		sessions.PUT("/:id/query", handler.UpdateQuery)
		sessions.POST("/:id/suggestions/:index/select", handler.SelectSuggestion)
		sessions.POST("/:id/location", handler.ChooseLocation)
		sessions.POST("/:id/device-location/request", handler.RequestDeviceLocation)
		sessions.POST("/:id/device-location", handler.ReportDeviceLocation)
		sessions.GET("/:id/events", handler.SessionEvents(newUpgrader(cfg.HTTP.AllowedOrigins)))
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
