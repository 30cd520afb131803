package order

import (
	"context"
	"errors"

	"checkoutflow/pkg/cart"
	"checkoutflow/pkg/customer"
	"checkoutflow/pkg/payment"
)

// Kind is the channel an order was placed through.
type Kind int

const (
	KindOnline Kind = iota
	KindInStore
)

func (k Kind) String() string {
	if k == KindInStore {
		return "InStore"
	}
	return "Online"
}

// ParseKind accepts exactly "Online" or "InStore".
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "Online":
		return KindOnline, true
	case "InStore":
		return KindInStore, true
	}
	return 0, false
}

// Order is a finalized cart.
type Order struct {
	ID         string
	CustomerID string
	Customer   *customer.Customer
	Kind       Kind
	Items      []*cart.LineItem
}

// Total returns the order total with the owner's tier discount applied.
func (o *Order) Total() float64 {
	return Total(o.Items, o.Customer)
}

// Process charges amount through m using the rule of the order's kind.
func (o *Order) Process(m payment.Method, amount float64) bool {
	switch o.Kind {
	case KindInStore:
		return processInStore(m, amount)
	default:
		return processOnline(m, amount)
	}
}

func processOnline(m payment.Method, amount float64) bool {
	return m.Approve(amount)
}

func processInStore(m payment.Method, amount float64) bool {
	return m.Approve(amount)
}

// Total sums price times quantity over items. Each line is discounted
// separately for Premium customers; nothing is rounded.
func Total(items []*cart.LineItem, c *customer.Customer) float64 {
	var total float64
	for _, li := range items {
		line := li.Price * float64(li.Quantity)
		if c != nil && c.Premium() {
			line *= customer.PremiumMultiplier
		}
		total += line
	}
	return total
}

// Repository defines behavior for storing finalized orders.
type Repository interface {
	// Create stores o, replacing any order with the same ID in place.
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	// List returns orders in the order they were first created.
	List(ctx context.Context) ([]*Order, error)
}

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order not found")
