package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/factra/internal/adapter/ledger"
	"github.com/polkiloo/factra/internal/app"
	"github.com/polkiloo/factra/internal/config"
	"github.com/polkiloo/factra/internal/domain/repository"
	"github.com/polkiloo/factra/internal/storage/postgres"
	"github.com/polkiloo/factra/internal/test"
	"github.com/polkiloo/factra/internal/worker"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		LedgerAddress:     "http://localhost",
		RefreshInterval:   time.Hour,
		LedgerConcurrency: 2,
		ShutdownTimeout:   time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ledgerStub := &test.LedgerClientStub{}

	var (
		facade    *app.FactoringFacade
		refresher *worker.SnapshotRefresher
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		fx.Supply(config.Args(nil)),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.InvoiceRepository(test.NewInvoiceRepositoryStub())),
			fx.Replace(repository.SyncRunRepository(&test.SyncRunRepositoryStub{})),
			fx.Replace(ledger.Client(ledgerStub)),
		),
		fx.Populate(&facade, &refresher),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected factoring facade instance")
	}
	if refresher == nil {
		t.Fatal("expected snapshot refresher instance")
	}
}
