// Package status defines the outcome codes reported for rejected records.
package status

import "errors"

// Code identifies a reported validation or business-rule failure.
type Code string

// Reported codes. Each is written to the report exactly as spelled here,
// except EmptyCart which has its own message.
const (
	InvalidCustomerID    Code = "INVALID_CUSTOMER_ID"
	InvalidProductID     Code = "INVALID_PRODUCT_ID"
	InvalidWarranty      Code = "INVALID_WARRANTY_PERIOD"
	InvalidSize          Code = "INVALID_SIZE"
	InvalidQuantity      Code = "INVALID_QUANTITY"
	OutOfStock           Code = "OUT_OF_STOCK"
	CartLimitExceeded    Code = "CART_LIMIT_EXCEEDED"
	InvalidOrderType     Code = "INVALID_ORDER_TYPE"
	InvalidPaymentMethod Code = "INVALID_PAYMENT_METHOD"
	EmptyCart            Code = "EMPTY_CART"
)

var messages = map[Code]string{
	EmptyCart: "Order cannot be processed: Cart is empty",
}

// Error is a failure that is reported in the batch output.
type Error struct {
	Code Code
}

// New returns an Error for code.
func New(code Code) *Error {
	return &Error{Code: code}
}

// Error returns the text written to the report.
func (e *Error) Error() string {
	if m, ok := messages[e.Code]; ok {
		return m
	}
	return string(e.Code)
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidCustomerID    = New(InvalidCustomerID)
	ErrInvalidProductID     = New(InvalidProductID)
	ErrInvalidWarranty      = New(InvalidWarranty)
	ErrInvalidSize          = New(InvalidSize)
	ErrInvalidQuantity      = New(InvalidQuantity)
	ErrOutOfStock           = New(OutOfStock)
	ErrCartLimitExceeded    = New(CartLimitExceeded)
	ErrInvalidOrderType     = New(InvalidOrderType)
	ErrInvalidPaymentMethod = New(InvalidPaymentMethod)
	ErrEmptyCart            = New(EmptyCart)
)

// ErrSkipped marks a record dropped without a report line, such as a
// malformed number or an unrecognized type. Wrap it with context.
var ErrSkipped = errors.New("record skipped")

// Reported returns the report line for err when err carries a code.
func Reported(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Error(), true
	}
	return "", false
}

// CodeOf returns the code carried by err.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
