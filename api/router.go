// Package api assembles the HTTP surface: routes, middleware and the
// dependency wiring between handlers and the extraction service.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/api/handler"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/api/middleware"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/cache"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/clip"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/config"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/webhook"
)

// Deps carries everything the router needs. Pool may be nil when no
// browser is configured.
type Deps struct {
	Config  *config.Config
	Service *clip.Service
	Cache   *cache.Cache
	Pool    handler.PoolStatser
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(d Deps) *gin.Engine {
	if d.Config.Server.Mode != "" {
		gin.SetMode(d.Config.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health stays reachable without credentials for load balancer probes.
	v1.GET("/health", handler.Health(d.Pool))

	protected := v1.Group("")
	protected.Use(middleware.Auth(d.Config.Auth))
	protected.Use(middleware.RateLimit(d.Config.RateLimit))
	{
		protected.POST("/extract", handler.Extract(d.Service, d.Cache))
		protected.POST("/batch/extract", handler.PostBatch(d.Service, d.Config.Browser.MaxPages, webhook.NewNotifier(d.Config.Webhook.Secret)))
		protected.GET("/batch/:id", handler.GetBatch())
		protected.GET("/platforms", handler.Platforms(d.Service.Registry()))
	}

	return r
}
