package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/factra/internal/engine/marketplace"
	"github.com/polkiloo/factra/internal/server/http/dto"
)

// MarketplaceHandler serves the open-invoice listing.
type MarketplaceHandler struct {
	facade MarketplaceFacade
}

// NewMarketplaceHandler constructs MarketplaceHandler.
func NewMarketplaceHandler(facade MarketplaceFacade) *MarketplaceHandler {
	return &MarketplaceHandler{facade: facade}
}

// List handles GET /api/marketplace.
func (h *MarketplaceHandler) List(c *gin.Context) {
	sortKey, err := marketplace.ParseSortKey(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listings := h.facade.Marketplace(c.Request.Context(), marketplace.Filters{
		Search: c.Query("q"),
		Sector: c.Query("sector"),
		Sort:   sortKey,
	})

	response := make([]dto.ListingResponse, 0, len(listings))
	for _, l := range listings {
		response = append(response, dto.ListingResponse{
			Invoice:   toInvoiceResponse(l.Record),
			Economics: toEconomicsResponse(l.Economics),
		})
	}
	c.JSON(http.StatusOK, response)
}

// Sectors handles GET /api/marketplace/sectors.
func (h *MarketplaceHandler) Sectors(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.Sectors(c.Request.Context()))
}
