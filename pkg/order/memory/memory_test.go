package memory

import (
	"context"
	"testing"

	"checkoutflow/pkg/order"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New()
	if err := repo.Create(ctx, &order.Order{ID: "O001", CustomerID: "C001"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, &order.Order{ID: "O002", CustomerID: "C002"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, "O001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CustomerID != "C001" {
		t.Fatalf("expected C001, got %s", got.CustomerID)
	}

	if err := repo.Create(ctx, &order.Order{ID: "O001", CustomerID: "C003", Kind: order.KindInStore}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	if list[0].ID != "O001" || list[0].CustomerID != "C003" || list[1].ID != "O002" {
		t.Fatalf("unexpected order: %s/%s, %s", list[0].ID, list[0].CustomerID, list[1].ID)
	}

	if _, err := repo.Get(ctx, "O404"); err != order.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
