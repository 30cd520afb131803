package order

import (
	"context"
	"fmt"

	"checkoutflow/pkg/cart"
	"checkoutflow/pkg/catalog"
	"checkoutflow/pkg/customer"
	"checkoutflow/pkg/payment"
	"checkoutflow/pkg/status"
)

// Engine applies cart additions and finalizes carts into orders.
type Engine struct {
	customers *customer.Registry
	catalog   *catalog.Catalog
	orders    Repository
}

// NewEngine returns an Engine over the given registries.
func NewEngine(customers *customer.Registry, products *catalog.Catalog, orders Repository) *Engine {
	return &Engine{customers: customers, catalog: products, orders: orders}
}

// AddToCart moves qty units of a product from stock into the customer's
// pending cart. On any error neither stock nor cart changes.
func (e *Engine) AddToCart(customerID, productID string, qty int) error {
	c, ok := e.customers.Lookup(customerID)
	if !ok {
		return fmt.Errorf("add to cart of %q: %w", customerID, status.ErrInvalidCustomerID)
	}
	p, ok := e.catalog.Lookup(productID)
	if !ok {
		return fmt.Errorf("add %q to cart: %w", productID, status.ErrInvalidProductID)
	}
	if qty <= 0 {
		return fmt.Errorf("add %d of %s: %w", qty, productID, status.ErrInvalidQuantity)
	}
	if qty > p.Stock {
		return fmt.Errorf("add %d of %s (stock %d): %w", qty, productID, p.Stock, status.ErrOutOfStock)
	}

	pending := c.Pending
	if pending == nil {
		pending = cart.New(c.ID)
	}
	if err := pending.CanAdd(qty); err != nil {
		return fmt.Errorf("add %d of %s for %s: %w", qty, productID, customerID, err)
	}

	if err := e.catalog.ReserveStock(productID, qty); err != nil {
		return err
	}
	if err := pending.Add(p, qty); err != nil {
		return err
	}
	c.Pending = pending
	return nil
}

// Receipt is the outcome of a finalized order.
type Receipt struct {
	Order    *Order
	Total    float64
	Method   payment.Method
	Approved bool
}

// Finalize turns the customer's pending cart into an order of the given
// kind and charges it. The order is stored even when payment is declined.
func (e *Engine) Finalize(ctx context.Context, customerID, orderID, kind, method string) (Receipt, error) {
	c, ok := e.customers.Lookup(customerID)
	if !ok {
		return Receipt{}, fmt.Errorf("finalize %s for %q: %w", orderID, customerID, status.ErrInvalidCustomerID)
	}
	k, ok := ParseKind(kind)
	if !ok {
		return Receipt{}, fmt.Errorf("finalize %s as %q: %w", orderID, kind, status.ErrInvalidOrderType)
	}
	m, ok := payment.Parse(method)
	if !ok {
		return Receipt{}, fmt.Errorf("finalize %s paying by %q: %w", orderID, method, status.ErrInvalidPaymentMethod)
	}
	if c.Pending.Empty() {
		return Receipt{}, fmt.Errorf("finalize %s for %s: %w", orderID, customerID, status.ErrEmptyCart)
	}

	o := &Order{
		ID:         orderID,
		CustomerID: customerID,
		Customer:   c,
		Kind:       k,
		Items:      c.Pending.Items,
	}
	c.Pending = nil

	total := o.Total()
	approved := o.Process(m, total)
	if err := e.orders.Create(ctx, o); err != nil {
		return Receipt{}, fmt.Errorf("store order %s: %w", orderID, err)
	}
	return Receipt{Order: o, Total: total, Method: m, Approved: approved}, nil
}
