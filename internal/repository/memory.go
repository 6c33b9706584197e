package repository

import (
	"context"
	"sync"

	"github.com/SerkanKacar01/kaniou-orders/internal/models"
)

// InMemoryOrderStore implements OrderStore with map storage. It backs the
// dev mode and the dispatcher's unit tests.
type InMemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]models.Order
	byRef  map[string]string
}

// NewInMemoryOrderStore creates an empty in-memory order store.
func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{
		orders: make(map[string]models.Order),
		byRef:  make(map[string]string),
	}
}

// Load returns a copy of the stored snapshot so callers can mutate and
// diff without racing the map.
func (s *InMemoryOrderStore) Load(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return order.Clone(), nil
}

// LoadByReference returns a copy of the order for a reference code.
func (s *InMemoryOrderStore) LoadByReference(ctx context.Context, code string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byRef[code]
	if !ok {
		return nil, ErrOrderNotFound
	}
	order := s.orders[id]
	return order.Clone(), nil
}

// Save inserts or overwrites the full snapshot (last write wins).
func (s *InMemoryOrderStore) Save(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.ID] = *order.Clone()
	s.byRef[order.ReferenceCode] = order.ID
	return nil
}
