// Package cart models a customer's in-progress shopping cart.
package cart

import (
	"fmt"

	"checkoutflow/pkg/catalog"
	"checkoutflow/pkg/status"
)

// MaxItems caps the summed quantity of all lines in one cart.
const MaxItems = 20

// PlaceholderPrefix prefixes the identifier of every pending cart.
const PlaceholderPrefix = "TEMP_ORDER_"

// LineItem is a snapshot of a catalog product with its own quantity.
type LineItem struct {
	ProductID      string
	Name           string
	Price          float64
	Kind           catalog.Kind
	WarrantyMonths int
	Size           string
	Quantity       int
}

func snapshot(p *catalog.Product) *LineItem {
	return &LineItem{
		ProductID:      p.ID,
		Name:           p.Name,
		Price:          p.Price,
		Kind:           p.Kind,
		WarrantyMonths: p.WarrantyMonths,
		Size:           p.Size,
	}
}

// String renders the line with its variant details.
func (li LineItem) String() string {
	base := fmt.Sprintf("%s %s %.2f Quantity: %d", li.ProductID, li.Name, li.Price, li.Quantity)
	switch li.Kind {
	case catalog.KindElectronics:
		return fmt.Sprintf("%s (%d months warranty)", base, li.WarrantyMonths)
	case catalog.KindFashion:
		return fmt.Sprintf("%s (Size: %s)", base, li.Size)
	}
	return base
}

// Cart is an ordered list of line items, at most one per product.
type Cart struct {
	ID    string
	Items []*LineItem
}

// New returns the empty pending cart for a customer.
func New(customerID string) *Cart {
	return &Cart{ID: PlaceholderPrefix + customerID}
}

// Quantity returns the summed quantity across all lines.
func (c *Cart) Quantity() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, li := range c.Items {
		n += li.Quantity
	}
	return n
}

// Empty reports whether the cart is missing or has no lines.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// CanAdd checks whether qty more units fit under MaxItems.
func (c *Cart) CanAdd(qty int) error {
	if qty <= 0 {
		return status.ErrInvalidQuantity
	}
	if c.Quantity()+qty > MaxItems {
		return fmt.Errorf("cart holds %d, adding %d: %w", c.Quantity(), qty, status.ErrCartLimitExceeded)
	}
	return nil
}

// Add merges qty units of p into the cart. Stock is not touched here.
func (c *Cart) Add(p *catalog.Product, qty int) error {
	if err := c.CanAdd(qty); err != nil {
		return err
	}
	if li := c.find(p.ID); li != nil {
		li.Quantity += qty
		return nil
	}
	li := snapshot(p)
	li.Quantity = qty
	c.Items = append(c.Items, li)
	return nil
}

func (c *Cart) find(productID string) *LineItem {
	for _, li := range c.Items {
		if li.ProductID == productID {
			return li
		}
	}
	return nil
}
