package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

const version = "1.0.0"

// PoolStatser reports browser page pool usage. Nil-safe via the wrapper
// in Health, since HTML-only deployments run without a browser.
type PoolStatser interface {
	Stats() models.PoolStats
}

// Health handles GET /api/v1/health. The service reports degraded when
// more than 80% of browser pages are in use.
func Health(pool PoolStatser) gin.HandlerFunc {
	start := time.Now()
	return func(c *gin.Context) {
		var stats models.PoolStats
		if pool != nil {
			stats = pool.Stats()
		}

		status := "healthy"
		if stats.MaxPages > 0 && float64(stats.ActivePages)/float64(stats.MaxPages) > 0.8 {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    status,
			Uptime:    time.Since(start).Round(time.Second).String(),
			PoolStats: stats,
			Version:   version,
		})
	}
}
