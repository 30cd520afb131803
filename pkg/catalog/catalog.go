// Package catalog holds the product inventory and its stock levels.
package catalog

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"checkoutflow/pkg/status"
)

// Limits applied when a product is registered.
const (
	MaxPrice    = 200000
	MaxStock    = 500
	MaxWarranty = 36
)

// Kind is the closed set of product variants.
type Kind int

const (
	KindGeneral Kind = iota
	KindElectronics
	KindFashion
)

func (k Kind) String() string {
	switch k {
	case KindElectronics:
		return "Electronics"
	case KindFashion:
		return "Fashion"
	default:
		return "General"
	}
}

// Product is a catalog entry. Stock is the only field that changes after
// registration.
type Product struct {
	ID    string
	Name  string
	Price float64
	Stock int
	Kind  Kind
	// WarrantyMonths is set for KindElectronics.
	WarrantyMonths int
	// Size is set for KindFashion.
	Size string
}

// String renders the product with its variant details.
func (p Product) String() string {
	base := fmt.Sprintf("%s %s %.2f", p.ID, p.Name, p.Price)
	switch p.Kind {
	case KindElectronics:
		return fmt.Sprintf("%s (%d months warranty)", base, p.WarrantyMonths)
	case KindFashion:
		return fmt.Sprintf("%s (Size: %s)", base, p.Size)
	}
	return base
}

type pricing struct {
	Price float64 `validate:"gt=0,lte=200000"`
	Stock int     `validate:"gt=0,lte=500"`
}

type electronicsSpec struct {
	WarrantyMonths int `validate:"min=0,max=36"`
}

type fashionSpec struct {
	Size string `validate:"oneof=S M L XL XXL"`
}

// Catalog maps product IDs to products in registration order.
type Catalog struct {
	validate *validator.Validate
	ids      []string
	products map[string]*Product
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{
		validate: validator.New(),
		products: make(map[string]*Product),
	}
}

// Register adds a product from the fields
// `id type name price quantity extra`, where extra is the warranty in
// months for Electronics or the size for Fashion. Failures carrying a
// status code are meant to be reported; the rest wrap status.ErrSkipped.
func (c *Catalog) Register(fields []string) (string, error) {
	if len(fields) < 6 {
		return "", fmt.Errorf("%w: product record has %d fields", status.ErrSkipped, len(fields))
	}
	id, kind, name := fields[0], fields[1], fields[2]

	price, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return "", fmt.Errorf("%w: product %s price %q", status.ErrSkipped, id, fields[3])
	}
	stock, err := strconv.Atoi(fields[4])
	if err != nil {
		return "", fmt.Errorf("%w: product %s quantity %q", status.ErrSkipped, id, fields[4])
	}

	if id == "" || c.products[id] != nil {
		return "", fmt.Errorf("register product %q: %w", id, status.ErrInvalidProductID)
	}
	if err := c.validate.Struct(pricing{Price: price, Stock: stock}); err != nil {
		return "", fmt.Errorf("%w: product %s: %v", status.ErrSkipped, id, err)
	}

	p := &Product{ID: id, Name: name, Price: price, Stock: stock}
	switch kind {
	case "Electronics":
		months, err := strconv.Atoi(fields[5])
		if err != nil {
			return "", fmt.Errorf("%w: product %s warranty %q", status.ErrSkipped, id, fields[5])
		}
		if err := c.validate.Struct(electronicsSpec{WarrantyMonths: months}); err != nil {
			return "", fmt.Errorf("register product %s: %w", id, status.ErrInvalidWarranty)
		}
		p.Kind, p.WarrantyMonths = KindElectronics, months
	case "Fashion":
		if err := c.validate.Struct(fashionSpec{Size: fields[5]}); err != nil {
			return "", fmt.Errorf("register product %s: %w", id, status.ErrInvalidSize)
		}
		p.Kind, p.Size = KindFashion, fields[5]
	default:
		return "", fmt.Errorf("%w: product %s type %q", status.ErrSkipped, id, kind)
	}

	c.ids = append(c.ids, id)
	c.products[id] = p
	return id, nil
}

// Lookup returns the product registered under id.
func (c *Catalog) Lookup(id string) (*Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// ReserveStock takes qty units of product id out of stock.
func (c *Catalog) ReserveStock(id string, qty int) error {
	p, ok := c.products[id]
	if !ok {
		return fmt.Errorf("reserve %s: %w", id, status.ErrInvalidProductID)
	}
	if qty <= 0 {
		return fmt.Errorf("reserve %s: %w", id, status.ErrInvalidQuantity)
	}
	if qty > p.Stock {
		return fmt.Errorf("reserve %d of %s (stock %d): %w", qty, id, p.Stock, status.ErrOutOfStock)
	}
	p.Stock -= qty
	return nil
}

// All returns the products in registration order.
func (c *Catalog) All() []*Product {
	out := make([]*Product, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.products[id])
	}
	return out
}

// Len returns the number of registered products.
func (c *Catalog) Len() int {
	return len(c.ids)
}
