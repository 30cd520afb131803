// Package customer implements the write-once customer registry.
package customer

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"checkoutflow/pkg/cart"
	"checkoutflow/pkg/status"
)

// Tier controls discount eligibility.
type Tier int

const (
	TierRegular Tier = iota
	TierPremium
)

// PremiumMultiplier is applied to every line total of a Premium customer.
const PremiumMultiplier = 0.90

func (t Tier) String() string {
	if t == TierPremium {
		return "Premium"
	}
	return "Regular"
}

// ParseTier accepts exactly "Regular" or "Premium".
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "Regular":
		return TierRegular, true
	case "Premium":
		return TierPremium, true
	}
	return 0, false
}

// Customer is a registered shopper.
type Customer struct {
	ID      string
	Name    string
	Email   string
	Address string
	Tier    Tier
	// Pending is the in-progress cart, nil until the first successful
	// addition and again after the cart is finalized into an order.
	Pending *cart.Cart
}

// Premium reports whether the customer gets the tier discount.
func (c *Customer) Premium() bool {
	return c.Tier == TierPremium
}

type contact struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Address string `validate:"required"`
	Tier    string `validate:"oneof=Regular Premium"`
}

// Registry maps customer IDs to customers in registration order.
type Registry struct {
	validate  *validator.Validate
	ids       []string
	customers map[string]*Customer
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		validate:  validator.New(),
		customers: make(map[string]*Customer),
	}
}

// Register adds a customer from the fields `id name email address type`.
func (r *Registry) Register(fields []string) (string, error) {
	if len(fields) != 5 {
		return "", fmt.Errorf("%w: customer record has %d fields", status.ErrSkipped, len(fields))
	}
	id := fields[0]
	if id == "" || r.customers[id] != nil {
		return "", fmt.Errorf("register customer %q: %w", id, status.ErrInvalidCustomerID)
	}

	info := contact{Name: fields[1], Email: fields[2], Address: fields[3], Tier: fields[4]}
	if err := r.validate.Struct(info); err != nil {
		return "", fmt.Errorf("%w: customer %s: %v", status.ErrSkipped, id, err)
	}
	tier, _ := ParseTier(info.Tier)

	r.ids = append(r.ids, id)
	r.customers[id] = &Customer{
		ID:      id,
		Name:    info.Name,
		Email:   info.Email,
		Address: info.Address,
		Tier:    tier,
	}
	return id, nil
}

// Lookup returns the customer registered under id.
func (r *Registry) Lookup(id string) (*Customer, bool) {
	c, ok := r.customers[id]
	return c, ok
}

// All returns the customers in registration order.
func (r *Registry) All() []*Customer {
	out := make([]*Customer, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.customers[id])
	}
	return out
}

// Len returns the number of registered customers.
func (r *Registry) Len() int {
	return len(r.ids)
}
