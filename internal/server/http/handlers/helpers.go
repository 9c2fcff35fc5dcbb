package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/engine"
	"github.com/polkiloo/factra/internal/engine/economics"
	"github.com/polkiloo/factra/internal/engine/lifecycle"
	"github.com/polkiloo/factra/internal/pkg/address"
	"github.com/polkiloo/factra/internal/server/http/dto"
	"github.com/polkiloo/factra/internal/server/http/middleware"
)

const btcPlaces = 4

// CurrentViewer extracts the wallet address resolved by the viewer middleware.
func CurrentViewer(c *gin.Context) model.Address {
	val, ok := c.Get(middleware.ViewerContextKey)
	if !ok {
		return ""
	}
	viewer, _ := val.(model.Address)
	return viewer
}

func toInvoiceResponse(r model.InvoiceRecord) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:            r.ID,
		Issuer:        address.Checksum(r.Issuer.String()),
		Buyer:         address.Checksum(r.Buyer.String()),
		FaceAmount:    r.FaceAmount.String(),
		FaceAmountBTC: btc(r.FaceAmount),
		DueDate:       r.DueDate,
		Status:        r.Status.String(),
		StatusLabel:   r.Status.Label(),
		BusinessName:  r.BusinessName,
		Sector:        r.Sector,
		Rating:        r.Rating,
		RatingDisplay: economics.FormatRating(r.Rating),
		DiscountRate:  r.DiscountRate,
	}
}

func toEconomicsResponse(e economics.Economics) dto.EconomicsResponse {
	e = e.Rounded()
	return dto.EconomicsResponse{
		FundingAmount:    e.FundingAmount.String(),
		FundingAmountBTC: btc(e.FundingAmount),
		Profit:           e.Profit.String(),
		ProfitBTC:        btc(e.Profit),
		YieldPct:         e.YieldPct.StringFixed(2),
		ROIPct:           e.ROIPct.StringFixed(2),
		DaysToMaturity:   e.DaysToMaturity,
	}
}

func toClassificationResponse(c lifecycle.Classification) dto.ClassificationResponse {
	return dto.ClassificationResponse{
		Fundable:     c.Fundable,
		NearMaturity: c.NearMaturity,
		Terminal:     c.Terminal,
	}
}

func toDetailResponse(d engine.Detail) dto.DetailResponse {
	return dto.DetailResponse{
		Invoice:        toInvoiceResponse(d.Record),
		Economics:      toEconomicsResponse(d.Economics),
		Classification: toClassificationResponse(d.Classification),
	}
}

func toDetailResponses(details []engine.Detail) []dto.DetailResponse {
	response := make([]dto.DetailResponse, 0, len(details))
	for _, d := range details {
		response = append(response, toDetailResponse(d))
	}
	return response
}

func btc(amount decimal.Decimal) string {
	return economics.FormatBTC(amount, btcPlaces)
}
