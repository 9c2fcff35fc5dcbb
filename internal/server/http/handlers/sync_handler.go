package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/factra/internal/domain/errors"
	"github.com/polkiloo/factra/internal/server/http/dto"
)

// SyncHandler reports snapshot freshness and service health.
type SyncHandler struct {
	facade SyncFacade
}

// NewSyncHandler constructs SyncHandler.
func NewSyncHandler(facade SyncFacade) *SyncHandler {
	return &SyncHandler{facade: facade}
}

// Status handles GET /api/sync/status.
func (h *SyncHandler) Status(c *gin.Context) {
	report, err := h.facade.SyncStatus(c.Request.Context())
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNoContent)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.SyncStatusResponse{
		ID:         report.ID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Total:      report.Total,
		Loaded:     report.Loaded,
		Missing:    report.Missing,
		Invalid:    report.Invalid,
		Succeeded:  report.Succeeded(),
		Error:      report.Error,
	})
}

// Health handles GET /api/health.
func (h *SyncHandler) Health(c *gin.Context) {
	if err := h.facade.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
