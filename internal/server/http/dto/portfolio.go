package dto

// PortfolioResponse represents dashboard statistics for the current viewer.
type PortfolioResponse struct {
	CreatedCount        int    `json:"createdCount"`
	CreatedTotalFace    string `json:"createdTotalFace"`
	CreatedTotalFaceBTC string `json:"createdTotalFaceBtc"`
	FundedCount         int    `json:"fundedCount"`
	FundedTotalFace     string `json:"fundedTotalFace"`
	FundedTotalFaceBTC  string `json:"fundedTotalFaceBtc"`
	ExpectedPayout      string `json:"expectedPayout"`
	ExpectedPayoutBTC   string `json:"expectedPayoutBtc"`
	IssuedCount         int    `json:"issuedCount"`
	IssuedTotalFace     string `json:"issuedTotalFace"`
	IssuedTotalFaceBTC  string `json:"issuedTotalFaceBtc"`
	Skipped             int    `json:"skipped"`
}
