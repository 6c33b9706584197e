package repository

import (
	"context"
	"errors"

	"github.com/SerkanKacar01/kaniou-orders/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStore defines the persistence interface for orders. It is the only
// shared mutable resource in the system and the sole synchronization point
// for concurrent updates to the same order; implementations provide
// whatever atomicity their backend offers (last-write-wins is acceptable).
type OrderStore interface {
	// Load returns the current snapshot for the internal order id, or
	// ErrOrderNotFound.
	Load(ctx context.Context, id string) (*models.Order, error)

	// LoadByReference returns the order for a human-facing reference code
	// ("bonnummer"), or ErrOrderNotFound.
	LoadByReference(ctx context.Context, code string) (*models.Order, error)

	// Save writes the full order snapshot, inserting or overwriting.
	Save(ctx context.Context, order *models.Order) error
}
