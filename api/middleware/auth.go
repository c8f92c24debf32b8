package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/config"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// Auth validates the API key on protected routes. Keys are accepted from
// the X-API-Key header or an Authorization: Bearer token.
func Auth(cfg config.AuthConfig) gin.HandlerFunc {
	keySet := make(map[string]struct{}, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		if k != "" {
			keySet[k] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if !cfg.Enabled || len(keySet) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				key = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if _, ok := keySet[key]; !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ExtractResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeUnauthorized,
					Message: "missing or invalid API key",
				},
			})
			return
		}

		c.Set("api_key", key)
		c.Next()
	}
}
