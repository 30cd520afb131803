// Package memory implements an in-memory order repository.
package memory

import (
	"context"

	"checkoutflow/pkg/order"
)

// Repository provides an in-memory implementation of order.Repository.
// A batch owns it exclusively, so it is not safe for concurrent use.
type Repository struct {
	ids    []string
	orders map[string]*order.Order
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{orders: make(map[string]*order.Order)}
}

// Create stores the order. An existing order with the same ID is replaced
// and keeps its position.
func (r *Repository) Create(ctx context.Context, o *order.Order) error {
	if _, ok := r.orders[o.ID]; !ok {
		r.ids = append(r.ids, o.ID)
	}
	r.orders[o.ID] = o
	return nil
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}

// List returns all orders in creation order.
func (r *Repository) List(ctx context.Context) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.orders[id])
	}
	return out, nil
}
