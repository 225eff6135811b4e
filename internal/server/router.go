// Package server exposes searches and trace playback over HTTP and WebSocket.
package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/pdrpinto/pathtrace/internal/runstore"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Maps        MapSource
	Runs        *runstore.Store
	Workers     int
	CORSOrigins []string
	RateLimit   float64
	RateBurst   int
	Version     string
}

// NewRouter builds the gin engine. ctx bounds long-lived playback sessions.
func NewRouter(ctx context.Context, deps *RouterDeps) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(requestID())
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("pathtrace"))
	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: deps.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       1 * time.Hour,
		}))
	}
	r.Use(newRateLimiter(deps.RateLimit, deps.RateBurst).handler())
	r.Use(prometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	maps := NewMapHandler(deps.Maps, deps.Version)
	searches := NewSearchHandler(deps.Maps, deps.Runs, deps.Workers, deps.Log)

	api := r.Group("/api")
	api.GET("/health", maps.Health)
	api.GET("/map", maps.Map)
	api.POST("/search", searches.Search)
	api.POST("/search/batch", searches.Batch)
	api.GET("/runs/:id", searches.Run)
	api.GET("/runs/:id/steps/:index", searches.Step)
	api.GET("/runs/:id/play", searches.Play(ctx, deps.CORSOrigins))

	return r
}
