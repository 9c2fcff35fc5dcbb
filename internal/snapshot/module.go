package snapshot

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/factra/internal/adapter/ledger"
	"github.com/polkiloo/factra/internal/config"
)

// Module provides the ledger snapshot loader.
var Module = fx.Provide(newLoader)

type loaderParams struct {
	fx.In

	Client ledger.Client
	Config *config.Config
	Logger *slog.Logger
}

func newLoader(p loaderParams) *Loader {
	return NewLoader(p.Client, p.Config.LedgerConcurrency, p.Logger)
}
