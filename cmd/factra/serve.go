package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/polkiloo/factra/internal/config"
	"github.com/polkiloo/factra/internal/di"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [flags]",
		Short: "Run the HTTP API and the ledger snapshot refresher",
		Long: `Run the HTTP API and the ledger snapshot refresher.

Flags mirror the environment: -a RUN_ADDRESS, -d DATABASE_URI, -l LEDGER_ADDRESS,
--refresh-interval, --ledger-concurrency, --ledger-rps, --shutdown-timeout,
--cors-origins and --log-level.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app := fx.New(
				fx.Provide(func() context.Context { return ctx }),
				fx.Supply(config.Args(args)),
				di.Module(),
			)

			run(ctx, app)
			return nil
		},
	}
}

func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start application: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop application: %v\n", err)
		os.Exit(1)
	}
}
