package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/engine/lifecycle"
	"github.com/polkiloo/factra/internal/engine/marketplace"
)

var now = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

const investor model.Address = "0x2222222222222222222222222222222222222222"

func records() []model.InvoiceRecord {
	return []model.InvoiceRecord{
		{ID: 1, Issuer: "0x1111111111111111111111111111111111111111", Buyer: model.ZeroAddress, FaceAmount: decimal.NewFromInt(50_000_000), DueDate: now.Add(15 * 24 * time.Hour), Status: model.StatusCreated, DiscountRate: 8, Sector: "Energy", BusinessName: "Acme"},
		{ID: 2, Issuer: "0x1111111111111111111111111111111111111111", Buyer: investor, FaceAmount: decimal.NewFromInt(1000), DueDate: now.Add(5 * 24 * time.Hour), Status: model.StatusFunded, DiscountRate: 4, Sector: "Energy", BusinessName: "Beta"},
	}
}

func TestConsumersShareOneEconomicsImplementation(t *testing.T) {
	rs := records()
	listing := QueryMarketplace(rs, marketplace.Filters{}, now)
	if len(listing) != 1 {
		t.Fatalf("expected one listing, got %d", len(listing))
	}

	detail := Describe(rs[0], now)
	direct := ComputeEconomics(rs[0], now)
	if !listing[0].Economics.YieldPct.Equal(detail.Economics.YieldPct) || !direct.YieldPct.Equal(detail.Economics.YieldPct) {
		t.Fatalf("economics differ between consumers")
	}
	if !detail.Classification.Fundable {
		t.Fatalf("expected created invoice to be fundable")
	}
}

func TestAggregateAndClassify(t *testing.T) {
	rs := records()
	summary := Aggregate(rs, investor, now)
	if summary.FundedCount != 1 || !summary.ExpectedPayout.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if got := Classify(rs[1], now); got != (lifecycle.Classification{State: model.StatusFunded, NearMaturity: true}) {
		t.Fatalf("unexpected classification %+v", got)
	}
}

func TestDescribeAll(t *testing.T) {
	all := DescribeAll(records(), now, nil)
	if len(all) != 2 {
		t.Fatalf("expected two details, got %d", len(all))
	}

	funded := DescribeAll(records(), now, func(r model.InvoiceRecord) bool { return r.Status == model.StatusFunded })
	if len(funded) != 1 || funded[0].Record.ID != 2 {
		t.Fatalf("unexpected filtered details %+v", funded)
	}
}
