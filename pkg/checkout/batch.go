// Package checkout runs a checkout batch: customers, products, cart
// additions, a cart report, then orders.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"checkoutflow/pkg/catalog"
	"checkoutflow/pkg/customer"
	"checkoutflow/pkg/logger"
	"checkoutflow/pkg/order"
	"checkoutflow/pkg/otel"
	"checkoutflow/pkg/record"
	"checkoutflow/pkg/status"
)

// Section limits. A section whose count exceeds its limit is dropped.
const (
	MaxCustomers = 100
	MaxProducts  = 200
	MaxOrders    = 50
)

// Batch owns the registries for one run.
type Batch struct {
	RunID     string
	Customers *customer.Registry
	Catalog   *catalog.Catalog
	Orders    order.Repository

	engine *order.Engine
	log    *logger.Logger
	out    *printer
}

// New returns a Batch writing its report to out and storing finalized
// orders in orders.
func New(log *logger.Logger, out io.Writer, orders order.Repository) *Batch {
	customers := customer.NewRegistry()
	products := catalog.New()
	return &Batch{
		RunID:     uuid.NewString(),
		Customers: customers,
		Catalog:   products,
		Orders:    orders,
		engine:    order.NewEngine(customers, products, orders),
		log:       log,
		out:       newPrinter(out),
	}
}

// Run processes in to completion. Record-level failures are reported or
// skipped; a returned error means the input structure itself is broken.
// Report lines written before the error are still flushed.
func (b *Batch) Run(ctx context.Context, in io.Reader) error {
	ctx, span := otel.AddSpan(ctx, "checkout.run", attribute.String("run_id", b.RunID))
	defer span.End()

	err := b.run(ctx, record.NewReader(in))
	if ferr := b.out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		span.RecordError(err)
		return err
	}

	orders, _ := b.Orders.List(ctx)
	b.log.Info(ctx, "batch complete",
		"run_id", b.RunID,
		"customers", b.Customers.Len(),
		"products", b.Catalog.Len(),
		"orders", len(orders),
	)
	return nil
}

func (b *Batch) run(ctx context.Context, r *record.Reader) error {
	if err := b.section(ctx, r, "customers", MaxCustomers, false, b.registerCustomer); err != nil {
		return err
	}
	if err := b.section(ctx, r, "products", MaxProducts, false, b.registerProduct); err != nil {
		return err
	}
	if err := b.section(ctx, r, "cart", 0, false, b.addToCart); err != nil {
		return err
	}
	b.reportCarts(ctx)
	return b.section(ctx, r, "orders", MaxOrders, true, b.finalize)
}

type recordFn func(ctx context.Context, fields []string) error

// section reads one counted section and applies fn to each record.
// limit <= 0 means unlimited.
func (b *Batch) section(ctx context.Context, r *record.Reader, name string, limit int, optional bool, fn recordFn) error {
	ctx, span := otel.AddSpan(ctx, "checkout."+name)
	defer span.End()

	n, err := r.Count()
	if err != nil {
		if optional && errors.Is(err, record.ErrNoSection) {
			return nil
		}
		return fmt.Errorf("%s section: %w", name, err)
	}
	if limit > 0 && n > limit {
		discarded := r.Discard(n)
		b.log.Warn(ctx, "section over limit", "section", name, "count", n, "limit", limit, "discarded", discarded)
		return nil
	}

	var applied, reported, skipped int
	for i := 0; i < n; i++ {
		fields, ok := r.Fields()
		if !ok {
			if err := r.Err(); err != nil {
				return fmt.Errorf("%s section: %w", name, err)
			}
			return fmt.Errorf("%s section: %w after %d of %d records", name, io.ErrUnexpectedEOF, i, n)
		}

		err := fn(ctx, fields)
		if err == nil {
			applied++
			continue
		}
		if line, ok := status.Reported(err); ok {
			reported++
			b.out.Println(line)
			b.log.Debug(ctx, "record rejected", "section", name, "line", r.Line(), "error", err)
			continue
		}
		if errors.Is(err, status.ErrSkipped) {
			skipped++
			b.log.Debug(ctx, "record skipped", "section", name, "line", r.Line(), "error", err)
			continue
		}
		return fmt.Errorf("%s section line %d: %w", name, r.Line(), err)
	}

	span.SetAttributes(
		attribute.Int("records", n),
		attribute.Int("applied", applied),
		attribute.Int("reported", reported),
		attribute.Int("skipped", skipped),
	)
	b.log.Info(ctx, "section processed", "section", name, "records", n, "applied", applied, "reported", reported, "skipped", skipped)
	return nil
}

func (b *Batch) registerCustomer(_ context.Context, fields []string) error {
	_, err := b.Customers.Register(fields)
	return err
}

func (b *Batch) registerProduct(_ context.Context, fields []string) error {
	_, err := b.Catalog.Register(fields)
	return err
}

func (b *Batch) addToCart(_ context.Context, fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("%w: cart record has %d fields", status.ErrSkipped, len(fields))
	}
	qty, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("%w: cart quantity %q", status.ErrSkipped, fields[2])
	}
	return b.engine.AddToCart(fields[0], fields[1], qty)
}

func (b *Batch) finalize(ctx context.Context, fields []string) error {
	if len(fields) != 4 {
		return fmt.Errorf("%w: order record has %d fields", status.ErrSkipped, len(fields))
	}
	orderID, customerID, kind, method := fields[0], fields[1], fields[2], fields[3]

	receipt, err := b.engine.Finalize(ctx, customerID, orderID, kind, method)
	if err != nil {
		return err
	}

	b.out.Println("Processing Order " + orderID + " for " + receipt.Order.Customer.Name)
	b.out.Println("Payment Method: " + receipt.Method.Label())
	b.out.Println("Payment Status: " + paymentStatus(receipt.Approved))

	b.log.Info(ctx, "order processed",
		"order_id", orderID,
		"customer_id", customerID,
		"kind", receipt.Order.Kind.String(),
		"total", receipt.Total,
		"approved", receipt.Approved,
	)
	return nil
}

// reportCarts writes one block per customer holding a non-empty cart.
func (b *Batch) reportCarts(ctx context.Context) {
	_, span := otel.AddSpan(ctx, "checkout.report")
	defer span.End()

	for _, c := range b.Customers.All() {
		if c.Pending.Empty() {
			continue
		}
		b.out.Printf("Customer: %s (%s)", c.Name, c.Tier)
		b.out.Println("Address: " + c.Address)
		b.out.Println("Shopping Cart:")
		for _, li := range c.Pending.Items {
			b.out.Printf("%s %s %s Quantity: %d", li.ProductID, li.Name, money(li.Price), li.Quantity)
		}

		total := money(order.Total(c.Pending.Items, c))
		if c.Premium() {
			b.out.Println("Total (after 10% discount): " + total)
		} else {
			b.out.Println("Total: " + total)
		}
	}
}
