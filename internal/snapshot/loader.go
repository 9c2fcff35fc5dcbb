package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/factra/internal/adapter/ledger"
	domainErrors "github.com/polkiloo/factra/internal/domain/errors"
	"github.com/polkiloo/factra/internal/domain/model"
)

// Snapshot is a point-in-time read of every invoice on the ledger.
type Snapshot struct {
	Records  []model.InvoiceRecord
	Missing  []int64
	Invalid  []int64
	Total    int64
	LoadedAt time.Time
}

// Loader reads all invoices from the ledger through a bounded worker pool.
type Loader struct {
	client      ledger.Client
	concurrency int
	logger      *slog.Logger
	now         func() time.Time
}

type result struct {
	record  model.InvoiceRecord
	err     error
	invalid bool
}

// NewLoader constructs a snapshot loader. A non-positive concurrency runs one
// read per invoice in parallel.
func NewLoader(client ledger.Client, concurrency int, logger *slog.Logger) *Loader {
	if concurrency < 0 {
		concurrency = 0
	}
	return &Loader{client: client, concurrency: concurrency, logger: logger, now: time.Now}
}

// Load fetches the invoice count and then every invoice by id. Failed reads
// and invalid tuples are reported in the snapshot instead of failing the batch.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	total, err := l.client.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("read invoice count: %w", err)
	}

	snap := &Snapshot{Total: total, Records: make([]model.InvoiceRecord, 0, total)}
	if total == 0 {
		snap.LoadedAt = l.now()
		return snap, nil
	}

	workers := int(total)
	if l.concurrency > 0 && l.concurrency < workers {
		workers = l.concurrency
	}

	results := make([]result, total)
	jobs := make(chan int64, workers)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				results[id-1] = l.fetch(ctx, id)
			}
		}()
	}

dispatch:
	for id := int64(1); id <= total; id++ {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- id:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, res := range results {
		id := int64(i + 1)
		switch {
		case res.invalid:
			snap.Invalid = append(snap.Invalid, id)
		case res.err != nil:
			snap.Missing = append(snap.Missing, id)
		default:
			snap.Records = append(snap.Records, res.record)
		}
	}
	snap.LoadedAt = l.now()

	l.logger.Debug("snapshot loaded",
		slog.Int64("total", total),
		slog.Int("loaded", len(snap.Records)),
		slog.Int("missing", len(snap.Missing)),
		slog.Int("invalid", len(snap.Invalid)),
	)
	return snap, nil
}

func (l *Loader) fetch(ctx context.Context, id int64) result {
	raw, err := l.client.Invoice(ctx, id)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			l.logger.Warn("ledger invoice read failed", slog.Int64("id", id), slog.String("error", err.Error()))
		}
		return result{err: err}
	}

	if raw.ID != id {
		l.logger.Warn("invalid invoice skipped", slog.Int64("id", id), slog.Int64("reported_id", raw.ID))
		return result{err: domainErrors.ErrInvalidInvoice, invalid: true}
	}

	record, err := model.FromRaw(raw)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidInvoice) {
			l.logger.Warn("invalid invoice skipped", slog.Int64("id", id), slog.String("error", err.Error()))
			return result{err: err, invalid: true}
		}
		return result{err: err}
	}
	return result{record: record}
}
