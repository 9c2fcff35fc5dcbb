package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/factra/internal/server/http/dto"
)

// PortfolioHandler serves the viewer's dashboard.
type PortfolioHandler struct {
	facade PortfolioFacade
}

// NewPortfolioHandler constructs PortfolioHandler.
func NewPortfolioHandler(facade PortfolioFacade) *PortfolioHandler {
	return &PortfolioHandler{facade: facade}
}

// Summary handles GET /api/portfolio.
func (h *PortfolioHandler) Summary(c *gin.Context) {
	s := h.facade.Portfolio(c.Request.Context(), CurrentViewer(c))
	c.JSON(http.StatusOK, dto.PortfolioResponse{
		CreatedCount:        s.CreatedCount,
		CreatedTotalFace:    s.CreatedTotalFace.String(),
		CreatedTotalFaceBTC: btc(s.CreatedTotalFace),
		FundedCount:         s.FundedCount,
		FundedTotalFace:     s.FundedTotalFace.String(),
		FundedTotalFaceBTC:  btc(s.FundedTotalFace),
		ExpectedPayout:      s.ExpectedPayout.String(),
		ExpectedPayoutBTC:   btc(s.ExpectedPayout),
		IssuedCount:         s.IssuedCount,
		IssuedTotalFace:     s.IssuedTotalFace.String(),
		IssuedTotalFaceBTC:  btc(s.IssuedTotalFace),
		Skipped:             s.Skipped,
	})
}

// Issued handles GET /api/invoices/issued.
func (h *PortfolioHandler) Issued(c *gin.Context) {
	details := h.facade.IssuedInvoices(c.Request.Context(), CurrentViewer(c))
	c.JSON(http.StatusOK, toDetailResponses(details))
}

// Funded handles GET /api/invoices/funded.
func (h *PortfolioHandler) Funded(c *gin.Context) {
	mine := false
	if raw := c.Query("mine"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mine must be a boolean"})
			return
		}
		mine = parsed
	}

	details := h.facade.FundedInvoices(c.Request.Context(), CurrentViewer(c), mine)
	c.JSON(http.StatusOK, toDetailResponses(details))
}
