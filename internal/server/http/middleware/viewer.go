package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/pkg/address"
)

const (
	// ViewerContextKey is a gin context key for the current wallet address.
	ViewerContextKey = "viewer"
	viewerHeader     = "X-Wallet-Address"
	viewerQuery      = "viewer"
)

// Viewer resolves the current wallet address from the request. A missing
// address leaves the viewer empty; a malformed one is rejected.
func Viewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractViewer(c)
		if raw == "" {
			c.Set(ViewerContextKey, model.Address(""))
			c.Next()
			return
		}

		viewer, err := model.ParseAddress(raw)
		if err != nil || !address.IsChecksummed(raw) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid wallet address"})
			return
		}

		c.Set(ViewerContextKey, viewer)
		c.Next()
	}
}

func extractViewer(c *gin.Context) string {
	if v := strings.TrimSpace(c.GetHeader(viewerHeader)); v != "" {
		return v
	}
	return strings.TrimSpace(c.Query(viewerQuery))
}
