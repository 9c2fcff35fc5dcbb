package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/factra/internal/domain/errors"
	"github.com/polkiloo/factra/internal/domain/model"
	"github.com/polkiloo/factra/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type invoiceRepository struct {
	storage *Storage
}

type syncRunRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.AfterConnect = registerTypes

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// registerTypes maps NUMERIC columns onto decimal.Decimal for every pooled connection.
func registerTypes(_ context.Context, conn *pgx.Conn) error {
	pgxdecimal.Register(conn.TypeMap())
	return nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Invoices() repository.InvoiceRepository {
	return &invoiceRepository{storage: s}
}

func (s *Storage) SyncRuns() repository.SyncRunRepository {
	return &syncRunRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS invoices (
            id BIGINT PRIMARY KEY,
            issuer TEXT NOT NULL,
            buyer TEXT NOT NULL,
            face_amount NUMERIC(78, 0) NOT NULL CHECK (face_amount > 0),
            due_date TIMESTAMPTZ NOT NULL,
            status SMALLINT NOT NULL,
            business_name TEXT NOT NULL,
            sector TEXT NOT NULL,
            rating SMALLINT NOT NULL,
            discount_rate SMALLINT NOT NULL,
            synced_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS sync_runs (
            id BIGSERIAL PRIMARY KEY,
            started_at TIMESTAMPTZ NOT NULL,
            finished_at TIMESTAMPTZ NOT NULL,
            total BIGINT NOT NULL,
            loaded INTEGER NOT NULL,
            missing INTEGER NOT NULL,
            invalid INTEGER NOT NULL,
            error TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices(status, due_date)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- InvoiceRepository implementation ---

const selectInvoices = `SELECT id, issuer, buyer, face_amount, due_date, status, business_name, sector, rating, discount_rate
                   FROM invoices`

// UpsertBatch stores records, never moving an invoice back to an earlier lifecycle state.
// Settled (2) and expired (3) are terminal, so a row in either state only accepts its own status.
func (r *invoiceRepository) UpsertBatch(ctx context.Context, records []model.InvoiceRecord) error {
	if len(records) == 0 {
		return nil
	}

	const upsert = `INSERT INTO invoices (id, issuer, buyer, face_amount, due_date, status, business_name, sector, rating, discount_rate, synced_at)
                    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
                    ON CONFLICT (id) DO UPDATE SET
                        issuer = EXCLUDED.issuer,
                        buyer = EXCLUDED.buyer,
                        face_amount = EXCLUDED.face_amount,
                        due_date = EXCLUDED.due_date,
                        status = EXCLUDED.status,
                        business_name = EXCLUDED.business_name,
                        sector = EXCLUDED.sector,
                        rating = EXCLUDED.rating,
                        discount_rate = EXCLUDED.discount_rate,
                        synced_at = NOW()
                    WHERE invoices.status = EXCLUDED.status
                       OR (invoices.status < EXCLUDED.status AND invoices.status < 2)`

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, rec := range records {
			_, err := tx.Exec(ctx, upsert,
				rec.ID,
				string(rec.Issuer),
				string(rec.Buyer),
				rec.FaceAmount,
				rec.DueDate,
				int16(rec.Status),
				rec.BusinessName,
				rec.Sector,
				int16(rec.Rating),
				int16(rec.DiscountRate),
			)
			if err != nil {
				return fmt.Errorf("upsert invoice %d: %w", rec.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.storage.logger.Debug("invoices upserted", slog.Int("count", len(records)))
	return nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]model.InvoiceRecord, error) {
	rows, err := r.storage.pool.Query(ctx, selectInvoices+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.InvoiceRecord
	for rows.Next() {
		rec, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*model.InvoiceRecord, error) {
	rec, err := scanInvoice(r.storage.pool.QueryRow(ctx, selectInvoices+` WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func scanInvoice(row pgx.Row) (model.InvoiceRecord, error) {
	var (
		rec                      model.InvoiceRecord
		issuer, buyer            string
		status, rating, discount int16
	)
	err := row.Scan(&rec.ID, &issuer, &buyer, &rec.FaceAmount, &rec.DueDate, &status, &rec.BusinessName, &rec.Sector, &rating, &discount)
	if err != nil {
		return model.InvoiceRecord{}, err
	}

	rec.Issuer = model.Address(issuer)
	rec.Buyer = model.Address(buyer)
	rec.Status = model.Status(status)
	rec.Rating = int(rating)
	rec.DiscountRate = int(discount)
	return rec, nil
}

// --- SyncRunRepository implementation ---

func (r *syncRunRepository) Record(ctx context.Context, report model.SyncReport) (*model.SyncReport, error) {
	const query = `INSERT INTO sync_runs (started_at, finished_at, total, loaded, missing, invalid, error)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.storage.pool.QueryRow(ctx, query,
		report.StartedAt, report.FinishedAt, report.Total, report.Loaded, report.Missing, report.Invalid, report.Error,
	).Scan(&report.ID)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *syncRunRepository) Latest(ctx context.Context) (*model.SyncReport, error) {
	const query = `SELECT id, started_at, finished_at, total, loaded, missing, invalid, error
                   FROM sync_runs ORDER BY id DESC LIMIT 1`
	var report model.SyncReport
	err := r.storage.pool.QueryRow(ctx, query).Scan(
		&report.ID, &report.StartedAt, &report.FinishedAt, &report.Total, &report.Loaded, &report.Missing, &report.Invalid, &report.Error,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
