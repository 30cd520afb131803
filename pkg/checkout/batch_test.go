package checkout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkoutflow/pkg/logger"
	"checkoutflow/pkg/order/memory"
	"checkoutflow/pkg/record"
)

func runBatch(t *testing.T, input string) (*Batch, string, error) {
	t.Helper()
	var out bytes.Buffer
	b := New(logger.NewNop(), &out, memory.New())
	err := b.Run(context.Background(), strings.NewReader(input))
	return b, out.String(), err
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}

func TestRunFullBatch(t *testing.T) {
	input := lines(
		"2",
		`C001 John john@example.com "123 Street" Regular`,
		`C002 Alice alice@example.com "456 Avenue" Premium`,
		"2",
		"P001 Electronics Phone 500.00 10 12",
		"P002 Fashion T-Shirt 20.00 50 M",
		"3",
		"C001 P001 2",
		"C002 P002 3",
		"C002 P002 1",
		"2",
		"O001 C001 Online CreditCard",
		"O002 C002 InStore PayPal",
	)

	b, out, err := runBatch(t, input)
	require.NoError(t, err)
	assert.Equal(t, lines(
		"Customer: John (Regular)",
		"Address: 123 Street",
		"Shopping Cart:",
		"P001 Phone 500.00 Quantity: 2",
		"Total: 1000.00",
		"Customer: Alice (Premium)",
		"Address: 456 Avenue",
		"Shopping Cart:",
		"P002 T-Shirt 20.00 Quantity: 4",
		"Total (after 10% discount): 72.00",
		"Processing Order O001 for John",
		"Payment Method: Credit Card",
		"Payment Status: Successful",
		"Processing Order O002 for Alice",
		"Payment Method: PayPal",
		"Payment Status: Successful",
	), out)

	orders, err := b.Orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "O001", orders[0].ID)
	assert.Equal(t, "O002", orders[1].ID)

	phone, _ := b.Catalog.Lookup("P001")
	assert.Equal(t, 8, phone.Stock)
}

func TestRunReportsCodesInOrder(t *testing.T) {
	input := lines(
		"3",
		`C001 John john@x.com "123 St" Regular`,
		`C001 Dup dup@x.com "1 St" Regular`,
		`C003 Quiet quiet@x.com "1 St" Gold`,
		"5",
		"P001 Electronics Phone 500.00 10 12",
		"P001 Electronics Phone 500.00 10 12",
		"P002 Electronics Radio 50 10 40",
		"P003 Fashion Hat 10 10 XS",
		"P004 Fashion Coat 200001 10 M",
		"6",
		"C404 P001 1",
		"C001 P404 1",
		"C001 P001 0",
		"C001 P001 25",
		"C001 P001 x",
		"C001 P001 1",
		"3",
		"O001 C404 Online CreditCard",
		"O002 C001 Drone CreditCard",
		"O003 C001 Online Cash",
	)

	b, out, err := runBatch(t, input)
	require.NoError(t, err)
	assert.Equal(t, lines(
		"INVALID_CUSTOMER_ID",
		"INVALID_PRODUCT_ID",
		"INVALID_WARRANTY_PERIOD",
		"INVALID_SIZE",
		"INVALID_CUSTOMER_ID",
		"INVALID_PRODUCT_ID",
		"INVALID_QUANTITY",
		"OUT_OF_STOCK",
		"Customer: John (Regular)",
		"Address: 123 St",
		"Shopping Cart:",
		"P001 Phone 500.00 Quantity: 1",
		"Total: 500.00",
		"INVALID_CUSTOMER_ID",
		"INVALID_ORDER_TYPE",
		"INVALID_PAYMENT_METHOD",
	), out)
	assert.Equal(t, 1, b.Customers.Len())
	assert.Equal(t, 1, b.Catalog.Len())
}

func TestRunCartLimit(t *testing.T) {
	input := lines(
		"1",
		`C001 John john@x.com "123 St" Regular`,
		"1",
		"P001 Fashion Sock 1.50 100 S",
		"3",
		"C001 P001 15",
		"C001 P001 6",
		"C001 P001 5",
	)
	b, out, err := runBatch(t, input)
	require.NoError(t, err)
	assert.Equal(t, lines(
		"CART_LIMIT_EXCEEDED",
		"Customer: John (Regular)",
		"Address: 123 St",
		"Shopping Cart:",
		"P001 Sock 1.50 Quantity: 20",
		"Total: 30.00",
	), out)
	sock, _ := b.Catalog.Lookup("P001")
	assert.Equal(t, 80, sock.Stock)
}

func TestRunEmptyCartOrder(t *testing.T) {
	input := lines(
		"1",
		`C001 John john@x.com "123 St" Premium`,
		"0",
		"0",
		"1",
		"O001 C001 Online PayPal",
	)
	b, out, err := runBatch(t, input)
	require.NoError(t, err)
	assert.Equal(t, lines("Order cannot be processed: Cart is empty"), out)

	orders, _ := b.Orders.List(context.Background())
	assert.Empty(t, orders)
}

func TestRunSecondOrderForSameCustomer(t *testing.T) {
	input := lines(
		"1",
		`C001 John john@x.com "123 St" Regular`,
		"1",
		"P001 Electronics Phone 500.00 10 12",
		"1",
		"C001 P001 1",
		"2",
		"O001 C001 Online CreditCard",
		"O002 C001 Online CreditCard",
	)
	_, out, err := runBatch(t, input)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, lines(
		"Payment Status: Successful",
		"Order cannot be processed: Cart is empty",
	)), out)
}

func TestRunWithoutOrderSection(t *testing.T) {
	input := lines(
		"1",
		`C001 John john@x.com "123 St" Premium`,
		"1",
		"P001 Electronics Phone 500.00 10 12",
		"1",
		"C001 P001 2",
	)
	_, out, err := runBatch(t, input)
	require.NoError(t, err)
	assert.Contains(t, out, "Total (after 10% discount): 900.00\n")
}

func TestRunSectionOverLimit(t *testing.T) {
	var sb strings.Builder
	fmt.Fprintln(&sb, MaxCustomers+1)
	for i := 0; i <= MaxCustomers; i++ {
		fmt.Fprintf(&sb, "C%03d Name n@x.com Addr Regular\n", i)
	}
	sb.WriteString(lines(
		"1",
		"P001 Electronics Phone 500.00 10 12",
		"1",
		"C001 P001 1",
		"51",
	))

	b, out, err := runBatch(t, sb.String())
	require.NoError(t, err)
	assert.Equal(t, 0, b.Customers.Len())
	assert.Equal(t, 1, b.Catalog.Len())
	assert.Equal(t, lines("INVALID_CUSTOMER_ID"), out)
}

func TestRunSectionAtLimit(t *testing.T) {
	var sb strings.Builder
	fmt.Fprintln(&sb, MaxCustomers)
	for i := 0; i < MaxCustomers; i++ {
		fmt.Fprintf(&sb, "C%03d Name n@x.com Addr Regular\n", i)
	}
	sb.WriteString(lines("0", "0"))

	b, _, err := runBatch(t, sb.String())
	require.NoError(t, err)
	assert.Equal(t, MaxCustomers, b.Customers.Len())
}

func TestRunStructuralErrors(t *testing.T) {
	t.Run("malformed count", func(t *testing.T) {
		_, _, err := runBatch(t, lines("two"))
		assert.True(t, errors.Is(err, record.ErrMalformedCount), "got %v", err)
	})
	t.Run("missing products section", func(t *testing.T) {
		_, _, err := runBatch(t, lines("0"))
		assert.ErrorIs(t, err, record.ErrNoSection)
	})
	t.Run("truncated section keeps earlier output", func(t *testing.T) {
		_, out, err := runBatch(t, lines(
			"1",
			`C001 John john@x.com "123 St" Regular`,
			"1",
			"P001 Electronics Phone 500.00 10 40",
			"2",
			"C001 P001 1",
		))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Equal(t, lines("INVALID_WARRANTY_PERIOD", "INVALID_PRODUCT_ID"), out)
	})
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1000, "1000.00"},
		{0.125, "0.13"},
		{1.005, "1.01"},
		{2.5, "2.50"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, money(tt.in), "money(%v)", tt.in)
	}
}
