// Package handler contains the HTTP endpoint implementations. Handlers
// stay thin: request binding, cache lookups and status mapping live here,
// the pipeline itself lives in the clip package.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/cache"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/clip"
	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// Extract handles POST /api/v1/extract.
func Extract(svc *clip.Service, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ExtractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, models.NewExtractError(models.ErrCodeInvalidInput,
				"invalid request body: "+err.Error(), err))
			return
		}
		req.Defaults()

		// Cache lookup before any fetching. Inline HTML keys on the raw
		// document, URL sources on the URL.
		source := req.URL
		if source == "" {
			source = req.HTML
		}
		key := cache.Key(source, req.Platform, req.OutputFormat, req.Format)
		if req.MaxAge > 0 && store != nil {
			if cached, ok := store.Get(key, req.MaxAge); ok {
				cached.CacheStatus = "hit"
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		resp, err := svc.Extract(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		if req.MaxAge > 0 {
			resp.CacheStatus = "miss"
		}
		if store != nil {
			store.Set(key, resp)
		}

		slog.Info("extraction complete",
			"platform", resp.Platform,
			"turns", resp.TurnCount,
			"fetch_method", resp.FetchMethod,
			"total_ms", resp.Timing.TotalMs)
		c.JSON(http.StatusOK, resp)
	}
}

// respondError writes an error response with the HTTP status implied by
// the error code.
func respondError(c *gin.Context, err error) {
	var ee *models.ExtractError
	if !errors.As(err, &ee) {
		ee = models.NewExtractError(models.ErrCodeInternal, err.Error(), err)
	}

	slog.Error("request failed", "code", ee.Code, "error", ee.Message)
	c.JSON(mapErrorToStatus(ee.Code), models.ExtractResponse{
		Success: false,
		Error:   ee.ToDetail(),
	})
}

func mapErrorToStatus(code string) int {
	switch code {
	case models.ErrCodeInvalidInput, models.ErrCodePlatformUnknown:
		return http.StatusBadRequest
	case models.ErrCodeNoConversation:
		return http.StatusUnprocessableEntity
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case models.ErrCodeNavigation, models.ErrCodeBrowserCrash:
		return http.StatusBadGateway
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
