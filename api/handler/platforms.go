package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/platform"
)

// Platforms handles GET /api/v1/platforms.
func Platforms(registry *platform.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"platforms": registry.List()})
	}
}
