package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/factra/internal/domain/errors"
	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/engine/marketplace"
	"github.com/polkiloo/factra/internal/snapshot"
	testhelpers "github.com/polkiloo/factra/internal/test"
	"github.com/polkiloo/factra/internal/usecase"
)

var (
	now      = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	alice    = model.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	bob      = model.Address("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	carol    = model.Address("0xcccccccccccccccccccccccccccccccccccccccc")
	errStore = errors.New("store down")
)

func record(id int64, status model.Status, issuer, buyer model.Address, face int64, due time.Time, discount int, sector string) model.InvoiceRecord {
	return model.InvoiceRecord{
		ID:           id,
		Issuer:       issuer,
		Buyer:        buyer,
		FaceAmount:   decimal.NewFromInt(face),
		DueDate:      due,
		Status:       status,
		BusinessName: "Business",
		Sector:       sector,
		Rating:       40,
		DiscountRate: discount,
	}
}

func fixtures() []model.InvoiceRecord {
	return []model.InvoiceRecord{
		record(1, model.StatusCreated, alice, model.ZeroAddress, 50_000_000, now.Add(30*24*time.Hour), 8, "Energy"),
		record(2, model.StatusFunded, alice, bob, 100_000_000, now.Add(10*24*time.Hour), 5, "Logistics"),
		record(3, model.StatusFunded, carol, alice, 70_000_000, now.Add(60*24*time.Hour), 5, "Energy"),
		record(4, model.StatusSettled, alice, bob, 10_000_000, now.Add(-24*time.Hour), 5, "Retail"),
		record(5, model.StatusCreated, carol, model.ZeroAddress, 20_000_000, now.Add(90*24*time.Hour), 12, "retail"),
	}
}

type snapshotLoaderStub struct {
	snapshot *snapshot.Snapshot
	err      error
}

func (s *snapshotLoaderStub) Load(context.Context) (*snapshot.Snapshot, error) {
	return s.snapshot, s.err
}

type facadeDeps struct {
	invoices *testhelpers.InvoiceRepositoryStub
	runs     *testhelpers.SyncRunRepositoryStub
	loader   *snapshotLoaderStub
}

func newFacade(records ...model.InvoiceRecord) (*FactoringFacade, facadeDeps) {
	deps := facadeDeps{
		invoices: testhelpers.NewInvoiceRepositoryStub(records...),
		runs:     &testhelpers.SyncRunRepositoryStub{},
		loader:   &snapshotLoaderStub{},
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	f := NewFactoringFacade(
		usecase.NewInvoiceUseCase(deps.invoices),
		usecase.NewSyncUseCase(deps.runs),
		deps.loader,
		testhelpers.HealthCheckerStub{},
		logger,
	)
	f.now = func() time.Time { return now }
	return f, deps
}

func ids(n int, id func(int) int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = id(i)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFactoringFacadeMarketplace(t *testing.T) {
	f, _ := newFacade(fixtures()...)

	listings := f.Marketplace(context.Background(), marketplace.Filters{Sort: marketplace.SortByAmount})
	got := ids(len(listings), func(i int) int64 { return listings[i].Record.ID })
	if !equalIDs(got, []int64{1, 5}) {
		t.Fatalf("unexpected listing order %v", got)
	}

	listings = f.Marketplace(context.Background(), marketplace.Filters{Sector: "RETAIL"})
	if len(listings) != 1 || listings[0].Record.ID != 5 {
		t.Fatalf("expected only invoice 5 in retail, got %+v", listings)
	}
}

func TestFactoringFacadeSectors(t *testing.T) {
	f, _ := newFacade(fixtures()...)

	sectors := f.Sectors(context.Background())
	if len(sectors) != 2 || sectors[0] != "Energy" {
		t.Fatalf("unexpected sectors %v", sectors)
	}
}

func TestFactoringFacadePortfolio(t *testing.T) {
	f, _ := newFacade(fixtures()...)

	summary := f.Portfolio(context.Background(), alice)
	if summary.CreatedCount != 2 || !summary.CreatedTotalFace.Equal(decimal.NewFromInt(70_000_000)) {
		t.Fatalf("unexpected created stats %+v", summary)
	}
	if summary.IssuedCount != 3 || !summary.IssuedTotalFace.Equal(decimal.NewFromInt(160_000_000)) {
		t.Fatalf("unexpected issued stats %+v", summary)
	}
	if summary.FundedCount != 1 || !summary.FundedTotalFace.Equal(decimal.NewFromInt(70_000_000)) {
		t.Fatalf("unexpected funded stats %+v", summary)
	}
	if !summary.ExpectedPayout.IsZero() {
		t.Fatalf("invoice 3 is not near maturity, got payout %s", summary.ExpectedPayout)
	}

	summary = f.Portfolio(context.Background(), bob)
	if summary.FundedCount != 1 || !summary.ExpectedPayout.Equal(decimal.NewFromInt(100_000_000)) {
		t.Fatalf("unexpected investor stats %+v", summary)
	}
}

func TestFactoringFacadePortfolioWithoutViewer(t *testing.T) {
	f, _ := newFacade(fixtures()...)

	summary := f.Portfolio(context.Background(), "")
	if summary.CreatedCount != 2 {
		t.Fatalf("expected market-wide created count, got %d", summary.CreatedCount)
	}
	if summary.IssuedCount != 0 || summary.FundedCount != 0 || !summary.ExpectedPayout.IsZero() {
		t.Fatalf("expected viewer metrics to be zero, got %+v", summary)
	}
}

func TestFactoringFacadeDegradesWhenStoreUnavailable(t *testing.T) {
	f, deps := newFacade(fixtures()...)
	deps.invoices.ListErr = errStore

	if listings := f.Marketplace(context.Background(), marketplace.Filters{}); len(listings) != 0 {
		t.Fatalf("expected empty listings, got %d", len(listings))
	}
	if summary := f.Portfolio(context.Background(), alice); summary.CreatedCount != 0 || summary.IssuedCount != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
	if sectors := f.Sectors(context.Background()); len(sectors) != 0 {
		t.Fatalf("expected no sectors, got %v", sectors)
	}
}

func TestFactoringFacadeInvoice(t *testing.T) {
	f, _ := newFacade(fixtures()...)

	detail, err := f.Invoice(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !detail.Classification.NearMaturity || detail.Classification.Fundable {
		t.Fatalf("unexpected classification %+v", detail.Classification)
	}
	if detail.Economics.DaysToMaturity != 10 {
		t.Fatalf("expected 10 days to maturity, got %d", detail.Economics.DaysToMaturity)
	}

	if _, err := f.Invoice(context.Background(), 42); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFactoringFacadeIssuedInvoices(t *testing.T) {
	f, _ := newFacade(fixtures()...)

	details := f.IssuedInvoices(context.Background(), "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	got := ids(len(details), func(i int) int64 { return details[i].Record.ID })
	if !equalIDs(got, []int64{1, 2, 4}) {
		t.Fatalf("unexpected issued invoices %v", got)
	}

	if details := f.IssuedInvoices(context.Background(), ""); len(details) != 0 {
		t.Fatalf("expected no invoices without viewer, got %d", len(details))
	}
}

func TestFactoringFacadeFundedInvoices(t *testing.T) {
	f, _ := newFacade(fixtures()...)

	all := f.FundedInvoices(context.Background(), alice, false)
	got := ids(len(all), func(i int) int64 { return all[i].Record.ID })
	if !equalIDs(got, []int64{2, 3}) {
		t.Fatalf("unexpected funded invoices %v", got)
	}

	mine := f.FundedInvoices(context.Background(), alice, true)
	got = ids(len(mine), func(i int) int64 { return mine[i].Record.ID })
	if !equalIDs(got, []int64{3}) {
		t.Fatalf("expected only invoice bought by viewer, got %v", got)
	}

	if none := f.FundedInvoices(context.Background(), "", true); len(none) != 0 {
		t.Fatalf("expected nothing for absent viewer, got %d", len(none))
	}
}

func TestFactoringFacadeRefreshSnapshot(t *testing.T) {
	f, deps := newFacade()
	deps.loader.snapshot = &snapshot.Snapshot{
		Records: fixtures()[:2],
		Missing: []int64{3},
		Invalid: []int64{4},
		Total:   4,
	}

	report, err := f.RefreshSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ID != 1 || report.Total != 4 || report.Loaded != 2 || report.Missing != 1 || report.Invalid != 1 || !report.Succeeded() {
		t.Fatalf("unexpected report %+v", report)
	}
	if _, err := f.Invoice(context.Background(), 2); err != nil {
		t.Fatalf("expected refreshed invoice to be stored: %v", err)
	}

	latest, err := f.SyncStatus(context.Background())
	if err != nil || latest.ID != report.ID {
		t.Fatalf("unexpected sync status %+v err=%v", latest, err)
	}
}

func TestFactoringFacadeRefreshSnapshotRecordsFailure(t *testing.T) {
	f, deps := newFacade()
	deps.loader.err = errors.New("ledger unreachable")

	report, err := f.RefreshSnapshot(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if report == nil || report.Succeeded() || report.Error != "ledger unreachable" {
		t.Fatalf("expected failed report, got %+v", report)
	}
	if len(deps.runs.Reports) != 1 {
		t.Fatalf("expected failed run to be recorded, got %d", len(deps.runs.Reports))
	}
}

func TestFactoringFacadeRefreshSnapshotStoreFailure(t *testing.T) {
	f, deps := newFacade()
	deps.loader.snapshot = &snapshot.Snapshot{Records: fixtures()[:1], Total: 1}
	deps.invoices.StoreErr = errStore
	deps.runs.RecordErr = errors.New("runs down")

	report, err := f.RefreshSnapshot(context.Background())
	if !errors.Is(err, errStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	if report == nil || report.Loaded != 1 || report.Error == "" {
		t.Fatalf("expected unsaved failure report, got %+v", report)
	}
}

func TestFactoringFacadeRefreshSnapshotCanceled(t *testing.T) {
	f, deps := newFacade()
	deps.loader.err = context.Canceled

	if _, err := f.RefreshSnapshot(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if len(deps.runs.Reports) != 0 {
		t.Fatal("expected canceled refresh not to be recorded")
	}
}

func TestFactoringFacadeSyncStatusEmpty(t *testing.T) {
	f, _ := newFacade()
	if _, err := f.SyncStatus(context.Background()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFactoringFacadeHealth(t *testing.T) {
	f, _ := newFacade()
	if err := f.Health(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.health = testhelpers.HealthCheckerStub{Err: errStore}
	if err := f.Health(context.Background()); !errors.Is(err, errStore) {
		t.Fatalf("expected health error, got %v", err)
	}
}
