package dto

import "time"

// InvoiceResponse is the wire view of one invoice record.
type InvoiceResponse struct {
	ID            int64     `json:"id"`
	Issuer        string    `json:"issuer"`
	Buyer         string    `json:"buyer"`
	FaceAmount    string    `json:"faceAmount"`
	FaceAmountBTC string    `json:"faceAmountBtc"`
	DueDate       time.Time `json:"dueDate"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"statusLabel"`
	BusinessName  string    `json:"businessName"`
	Sector        string    `json:"sector"`
	Rating        int       `json:"rating"`
	RatingDisplay string    `json:"ratingDisplay"`
	DiscountRate  int       `json:"discountRate"`
}

// EconomicsResponse carries derived amounts as integer strings and
// percentages rounded to two decimals.
type EconomicsResponse struct {
	FundingAmount    string `json:"fundingAmount"`
	FundingAmountBTC string `json:"fundingAmountBtc"`
	Profit           string `json:"profit"`
	ProfitBTC        string `json:"profitBtc"`
	YieldPct         string `json:"yieldPct"`
	ROIPct           string `json:"roiPct"`
	DaysToMaturity   int64  `json:"daysToMaturity"`
}

// ClassificationResponse exposes the lifecycle flags of an invoice.
type ClassificationResponse struct {
	Fundable     bool `json:"fundable"`
	NearMaturity bool `json:"nearMaturity"`
	Terminal     bool `json:"terminal"`
}

// ListingResponse is one marketplace row.
type ListingResponse struct {
	Invoice   InvoiceResponse   `json:"invoice"`
	Economics EconomicsResponse `json:"economics"`
}

// DetailResponse is the single-invoice view.
type DetailResponse struct {
	Invoice        InvoiceResponse        `json:"invoice"`
	Economics      EconomicsResponse      `json:"economics"`
	Classification ClassificationResponse `json:"classification"`
}
