package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/factra/internal/domain/errors"
)

// InvoiceHandler serves single-invoice details.
type InvoiceHandler struct {
	facade InvoiceFacade
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(facade InvoiceFacade) *InvoiceHandler {
	return &InvoiceHandler{facade: facade}
}

// Get handles GET /api/invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
		return
	}

	detail, err := h.facade.Invoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toDetailResponse(*detail))
}
