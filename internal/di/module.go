package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/factra/internal/adapter/ledger"
	"github.com/polkiloo/factra/internal/app"
	"github.com/polkiloo/factra/internal/config"
	"github.com/polkiloo/factra/internal/logger"
	"github.com/polkiloo/factra/internal/server/http/handlers"
	"github.com/polkiloo/factra/internal/server/http/router"
	"github.com/polkiloo/factra/internal/snapshot"
	"github.com/polkiloo/factra/internal/storage/postgres"
	"github.com/polkiloo/factra/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		ledger.Module,
		snapshot.Module,
		usecase.Module,
		fx.Provide(
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(l *snapshot.Loader) app.SnapshotLoader { return l },
			func(f *app.FactoringFacade) handlers.FactoringFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
