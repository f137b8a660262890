package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/repository"
)

const uniqueViolation = "23505"

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxPool interface {
	querier
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage is the PostgreSQL unit of work. Repositories obtained from it
// directly run on the pool; the ones handed to WithinTransaction share a tx.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

var _ repository.UnitOfWork = (*Storage)(nil)

// New connects to dsn and creates the schema.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("database schema ready")

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) Customers() repository.CustomerRepository {
	return s.repositories().Customers()
}

func (s *Storage) Products() repository.ProductRepository {
	return s.repositories().Products()
}

func (s *Storage) Orders() repository.OrderRepository {
	return s.repositories().Orders()
}

func (s *Storage) Invoices() repository.InvoiceRepository {
	return s.repositories().Invoices()
}

func (s *Storage) Commissions() repository.CommissionRepository {
	return s.repositories().Commissions()
}

func (s *Storage) Wallets() repository.WalletRepository {
	return s.repositories().Wallets()
}

// WithinTransaction runs fn with repositories bound to one transaction.
// The error returned by fn is passed through unchanged.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(repository.Factory) error) error {
	return runInTx(ctx, s.pool, func(q querier) error {
		return fn(repositories{conn{db: q}})
	})
}

func (s *Storage) repositories() repositories {
	return repositories{conn{db: s.pool, pool: s.pool}}
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// conn is what a repository runs statements on. pool is nil inside a
// transaction opened by WithinTransaction.
type conn struct {
	db   querier
	pool txBeginner
}

// inTx runs fn in the current transaction, or in a new one on the pool.
func (c conn) inTx(ctx context.Context, fn func(querier) error) error {
	if c.pool == nil {
		return fn(c.db)
	}
	return runInTx(ctx, c.pool, fn)
}

type repositories struct {
	conn
}

func (r repositories) Customers() repository.CustomerRepository {
	return &customerRepository{conn: r.conn}
}

func (r repositories) Products() repository.ProductRepository {
	return &productRepository{conn: r.conn}
}

func (r repositories) Orders() repository.OrderRepository {
	return &orderRepository{conn: r.conn}
}

func (r repositories) Invoices() repository.InvoiceRepository {
	return &invoiceRepository{conn: r.conn}
}

func (r repositories) Commissions() repository.CommissionRepository {
	return &commissionRepository{conn: r.conn}
}

func (r repositories) Wallets() repository.WalletRepository {
	return &walletRepository{conn: r.conn}
}

type txBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

func runInTx(ctx context.Context, pool txBeginner, fn func(querier) error) (err error) {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("commit tx: %w", commitErr)
		}
	}()

	err = fn(tx)
	return err
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            is_staff BOOLEAN NOT NULL DEFAULT FALSE,
            is_dealer BOOLEAN NOT NULL DEFAULT FALSE,
            dealer_commission_rate NUMERIC(7,4) NOT NULL DEFAULT 0,
            national_id TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            postal_code TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            tax_rate NUMERIC(7,4),
            is_active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES customers(id),
            status TEXT NOT NULL,
            invoice_category TEXT NOT NULL,
            quoted_total NUMERIC(20,4) NOT NULL DEFAULT 0,
            admin_comment TEXT NOT NULL DEFAULT '',
            rejection_reason TEXT NOT NULL DEFAULT '',
            priced_by BIGINT REFERENCES customers(id),
            pricing_date TIMESTAMPTZ,
            customer_response_date TIMESTAMPTZ,
            completion_date TIMESTAMPTZ,
            cancelled_at TIMESTAMPTZ,
            dealer_id BIGINT REFERENCES customers(id),
            custom_commission_rate NUMERIC(7,4),
            commission_rate NUMERIC(7,4),
            dealer_assigned_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            product_id BIGINT NOT NULL REFERENCES products(id),
            requested_quantity INTEGER NOT NULL CHECK (requested_quantity > 0),
            customer_notes TEXT NOT NULL DEFAULT '',
            quoted_unit_price NUMERIC(20,4) NOT NULL DEFAULT 0 CHECK (quoted_unit_price >= 0),
            final_quantity INTEGER NOT NULL DEFAULT 0 CHECK (final_quantity >= 0),
            admin_notes TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS invoices (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL UNIQUE REFERENCES orders(id),
            invoice_number TEXT NOT NULL UNIQUE,
            invoice_type TEXT NOT NULL,
            total_amount NUMERIC(20,4) NOT NULL,
            discount NUMERIC(20,4) NOT NULL DEFAULT 0,
            tax_rate NUMERIC NOT NULL DEFAULT 0,
            tax_amount NUMERIC(20,4) NOT NULL,
            payable_amount NUMERIC(20,4) NOT NULL,
            is_finalized BOOLEAN NOT NULL DEFAULT FALSE,
            issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS dealer_commissions (
            id BIGSERIAL PRIMARY KEY,
            dealer_id BIGINT NOT NULL REFERENCES customers(id),
            order_id BIGINT NOT NULL UNIQUE REFERENCES orders(id),
            order_total NUMERIC(20,4) NOT NULL,
            commission_rate NUMERIC(7,4) NOT NULL,
            commission_amount NUMERIC(20,4) NOT NULL,
            is_paid BOOLEAN NOT NULL DEFAULT FALSE,
            paid_at TIMESTAMPTZ,
            payment_reference TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS wallets (
            customer_id BIGINT PRIMARY KEY REFERENCES customers(id),
            balance NUMERIC(20,4) NOT NULL DEFAULT 0 CHECK (balance >= 0),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS wallet_transactions (
            id BIGSERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES customers(id),
            kind TEXT NOT NULL,
            amount NUMERIC(20,4) NOT NULL CHECK (amount > 0),
            reference TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_commissions_dealer ON dealer_commissions(dealer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_wallet_transactions_customer ON wallet_transactions(customer_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// notFoundOr maps pgx.ErrNoRows to the domain sentinel and wraps the rest.
func notFoundOr(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
