package repository

import (
	"context"
	"sync"

	"github.com/cinetick/cinetick/internal/domain"
)

// MemoryOrderRepository is the order ledger counterpart of
// MemoryFilmRepository, used in dev mode and tests.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (m *MemoryOrderRepository) Create(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *order
	stored.Lines = append([]domain.OrderLine(nil), order.Lines...)
	m.orders[order.ID] = &stored

	return nil
}

func (m *MemoryOrderRepository) GetByIds(_ context.Context, ids []string) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := make([]*domain.Order, 0, len(ids))

	for _, id := range ids {
		order, ok := m.orders[id]
		if !ok {
			continue
		}

		snapshot := *order
		snapshot.Lines = append([]domain.OrderLine(nil), order.Lines...)
		orders = append(orders, &snapshot)
	}

	return orders, nil
}
