package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/polkiloo/factra/internal/adapter/ledger"
	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/engine"
	"github.com/polkiloo/factra/internal/engine/economics"
	"github.com/polkiloo/factra/internal/engine/marketplace"
	"github.com/polkiloo/factra/internal/logger"
	"github.com/polkiloo/factra/internal/pkg/address"
	"github.com/polkiloo/factra/internal/snapshot"
)

type inspectOptions struct {
	ledgerAddress string
	concurrency   int
	rps           float64
	viewer        string
	search        string
	sector        string
	sort          string
	logLevel      string
}

func newInspectCmd() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Read the ledger once and print the portfolio and marketplace",
		Example: `  factra inspect -l http://localhost:8545 --viewer 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed
  factra inspect --sector energy --sort maturity`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ledgerAddress, "ledger", "l", os.Getenv("LEDGER_ADDRESS"), "ledger gateway base URL")
	flags.IntVar(&opts.concurrency, "ledger-concurrency", 8, "maximum parallel invoice reads")
	flags.Float64Var(&opts.rps, "ledger-rps", 0, "ledger requests per second (0 = unlimited)")
	flags.StringVar(&opts.viewer, "viewer", "", "wallet address used for viewer-scoped statistics")
	flags.StringVar(&opts.search, "q", "", "case-insensitive business name filter")
	flags.StringVar(&opts.sector, "sector", "", "sector filter (all = no filter)")
	flags.StringVar(&opts.sort, "sort", "yield", "sort key: yield, amount or maturity")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level for diagnostics on stderr")
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	if opts.ledgerAddress == "" {
		return fmt.Errorf("ledger address must be provided")
	}
	viewer := model.Address("")
	if opts.viewer != "" {
		v, err := model.ParseAddress(opts.viewer)
		if err != nil {
			return fmt.Errorf("viewer: %w", err)
		}
		viewer = v
	}
	sortKey, err := marketplace.ParseSortKey(opts.sort)
	if err != nil {
		return err
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logger.ParseLevel(opts.logLevel)}))
	client, err := ledger.NewHTTPClient(opts.ledgerAddress, opts.rps, log)
	if err != nil {
		return err
	}

	snap, err := snapshot.NewLoader(client, opts.concurrency, log).Load(cmd.Context())
	if err != nil {
		return err
	}

	filters := marketplace.Filters{Search: opts.search, Sector: opts.sector, Sort: sortKey}
	return printReport(cmd.OutOrStdout(), snap, viewer, filters, time.Now())
}

func printReport(out io.Writer, snap *snapshot.Snapshot, viewer model.Address, filters marketplace.Filters, now time.Time) error {
	summary := engine.Aggregate(snap.Records, viewer, now)
	listings := engine.QueryMarketplace(snap.Records, filters, now)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ledger invoices\t%d\n", snap.Total)
	fmt.Fprintf(w, "loaded / missing / invalid\t%d / %d / %d\n", len(snap.Records), len(snap.Missing), len(snap.Invalid))
	fmt.Fprintf(w, "open for funding\t%d (%s BTC)\n", summary.CreatedCount, economics.FormatBTC(summary.CreatedTotalFace, 4))
	if !viewer.IsZero() {
		fmt.Fprintf(w, "viewer\t%s\n", address.Checksum(viewer.String()))
		fmt.Fprintf(w, "issued\t%d (%s BTC)\n", summary.IssuedCount, economics.FormatBTC(summary.IssuedTotalFace, 4))
		fmt.Fprintf(w, "funded\t%d (%s BTC)\n", summary.FundedCount, economics.FormatBTC(summary.FundedTotalFace, 4))
		fmt.Fprintf(w, "expected payout\t%s BTC\n", economics.FormatBTC(summary.ExpectedPayout, 4))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "ID\tBUSINESS\tSECTOR\tRATING\tFACE BTC\tPRICE BTC\tDISCOUNT\tDAYS\tYIELD %\tROI %")
	for _, l := range listings {
		e := l.Economics.Rounded()
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d%%\t%d\t%s\t%s\n",
			l.Record.ID,
			l.Record.BusinessName,
			l.Record.Sector,
			economics.FormatRating(l.Record.Rating),
			economics.FormatBTC(l.Record.FaceAmount, 4),
			economics.FormatBTC(e.FundingAmount, 4),
			l.Record.DiscountRate,
			e.DaysToMaturity,
			e.YieldPct.StringFixed(2),
			e.ROIPct.StringFixed(2),
		)
	}
	return w.Flush()
}
