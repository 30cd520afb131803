// Package payment approves order totals through a chosen payment method.
package payment

// Method approves or declines a charge. Each method keeps its own rule.
type Method interface {
	Approve(amount float64) bool
	// Label is the human-readable method name used in reports.
	Label() string
}

// CreditCard charges a card.
type CreditCard struct{}

// Approve accepts any positive amount.
func (CreditCard) Approve(amount float64) bool {
	return amount > 0
}

func (CreditCard) Label() string { return "Credit Card" }

// PayPal charges a PayPal account.
type PayPal struct{}

// Approve accepts any positive amount.
func (PayPal) Approve(amount float64) bool {
	return amount > 0
}

func (PayPal) Label() string { return "PayPal" }

// Parse maps an input token to a Method.
func Parse(name string) (Method, bool) {
	switch name {
	case "CreditCard":
		return CreditCard{}, true
	case "PayPal":
		return PayPal{}, true
	}
	return nil, false
}
