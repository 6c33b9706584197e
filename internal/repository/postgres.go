package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SerkanKacar01/kaniou-orders/internal/models"
)

const ordersSchema = `
CREATE TABLE IF NOT EXISTS orders (
	id              TEXT PRIMARY KEY,
	reference_code  TEXT NOT NULL UNIQUE,
	customer_name   TEXT NOT NULL,
	email           TEXT NOT NULL,
	phone           TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	customer_note   TEXT NOT NULL DEFAULT '',
	internal_note   TEXT NOT NULL DEFAULT '',
	notify_email    BOOLEAN NOT NULL DEFAULT TRUE,
	notify_whatsapp BOOLEAN NOT NULL DEFAULT FALSE,
	amount_cents    BIGINT NOT NULL DEFAULT 0,
	currency        TEXT NOT NULL DEFAULT 'EUR',
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
)`

// PostgresOrderStore implements OrderStore over a pgx connection pool. A
// bloom filter of reference codes sits in front of LoadByReference so
// lookups for codes that cannot exist skip the database entirely.
type PostgresOrderStore struct {
	pool *pgxpool.Pool
	refs *referenceFilter
}

// NewPostgresOrderStore creates the table if needed and seeds the
// reference-code filter from existing rows.
func NewPostgresOrderStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresOrderStore, error) {
	if _, err := pool.Exec(ctx, ordersSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure orders schema: %w", err)
	}

	store := &PostgresOrderStore{
		pool: pool,
		refs: newReferenceFilter(100_000),
	}

	rows, err := pool.Query(ctx, `SELECT reference_code FROM orders`)
	if err != nil {
		return nil, fmt.Errorf("failed to seed reference filter: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan reference code: %w", err)
		}
		store.refs.Add(code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading reference codes: %w", err)
	}

	return store, nil
}

const orderColumns = `id, reference_code, customer_name, email, phone, status,
	customer_note, internal_note, notify_email, notify_whatsapp,
	amount_cents, currency, created_at, updated_at`

// Load returns the snapshot for an internal order id.
func (s *PostgresOrderStore) Load(ctx context.Context, id string) (*models.Order, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

// LoadByReference returns the order for a reference code, consulting the
// bloom filter first.
func (s *PostgresOrderStore) LoadByReference(ctx context.Context, code string) (*models.Order, error) {
	if !s.refs.MayContain(code) {
		return nil, ErrOrderNotFound
	}

	row := s.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE reference_code = $1`, code)
	return scanOrder(row)
}

// Save upserts the full snapshot. Concurrent saves for the same order are
// last-write-wins, which matches the store contract.
func (s *PostgresOrderStore) Save(ctx context.Context, order *models.Order) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			customer_name   = EXCLUDED.customer_name,
			email           = EXCLUDED.email,
			phone           = EXCLUDED.phone,
			status          = EXCLUDED.status,
			customer_note   = EXCLUDED.customer_note,
			internal_note   = EXCLUDED.internal_note,
			notify_email    = EXCLUDED.notify_email,
			notify_whatsapp = EXCLUDED.notify_whatsapp,
			amount_cents    = EXCLUDED.amount_cents,
			currency        = EXCLUDED.currency,
			updated_at      = EXCLUDED.updated_at`,
		order.ID, order.ReferenceCode, order.CustomerName, order.Email, order.Phone,
		string(order.Status), order.CustomerNote, order.InternalNote,
		order.Preferences.Email, order.Preferences.WhatsApp,
		int64(order.AmountCents), order.Currency, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save order %s: %w", order.ID, err)
	}

	s.refs.Add(order.ReferenceCode)
	return nil
}

// scanOrder maps a single row onto the order model.
func scanOrder(row pgx.Row) (*models.Order, error) {
	var (
		o      models.Order
		status string
		cents  int64
	)
	err := row.Scan(&o.ID, &o.ReferenceCode, &o.CustomerName, &o.Email, &o.Phone,
		&status, &o.CustomerNote, &o.InternalNote,
		&o.Preferences.Email, &o.Preferences.WhatsApp,
		&cents, &o.Currency, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	o.Status = models.OrderStatus(status)
	o.AmountCents = models.Money(cents)
	return &o, nil
}
