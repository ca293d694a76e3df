package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/infrastructure/repositories"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/mocks"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	t.Cleanup(func() {
		mr.Close()
	})

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func testProducts() []*domain.Product {
	return []*domain.Product{
		{ID: "p1", Name: "Miere de salcam", Price: 29.99, Stock: 10, IsAvailable: true},
		{ID: "p2", Name: "Branza de burduf", Price: 45.00, Stock: 3, IsAvailable: true},
		{ID: "p3", Name: "Tuica de prune", Price: 60.00, Stock: 5, IsAvailable: false},
	}
}

func newTestCartService(t *testing.T, ttl time.Duration) (domain.CartService, *miniredis.Miniredis) {
	t.Helper()
	client, mr := setupTestRedis(t)
	repo := repositories.NewCartRepository(client, repositories.NewRecordStore(client))
	catalog := mocks.NewMockProductCatalog(testProducts()...)
	return NewCartService(repo, catalog, ttl), mr
}

func TestCartServiceImpl_AddItemCreatesSession(t *testing.T) {
	svc, _ := newTestCartService(t, time.Hour)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", "p1", 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if cart.ID == "" {
		t.Error("expected a generated session id")
	}
	if cart.TotalItems() != 2 {
		t.Errorf("expected 2 items, got %d", cart.TotalItems())
	}
	if cart.Items[0].UnitPrice != 29.99 {
		t.Errorf("expected price snapshot 29.99, got %v", cart.Items[0].UnitPrice)
	}
	if !cart.ExpiresAt.After(cart.CreatedAt) {
		t.Error("expected expiry after creation")
	}
}

func TestCartServiceImpl_AddItemMergesLines(t *testing.T) {
	svc, _ := newTestCartService(t, time.Hour)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", "p1", 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	cart, err = svc.AddItem(ctx, cart.ID, "p1", 3)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("expected merged quantity 5, got %d", cart.Items[0].Quantity)
	}
}

func TestCartServiceImpl_AddItemValidation(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		quantity  int
		err       error
	}{
		{"zero quantity", "p1", 0, domain.ErrInvalidQuantity},
		{"negative quantity", "p1", -1, domain.ErrInvalidQuantity},
		{"unknown product", "missing", 1, domain.ErrProductNotFound},
		{"unavailable product", "p3", 1, domain.ErrProductUnavailable},
		{"over stock", "p2", 4, domain.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestCartService(t, time.Hour)

			_, err := svc.AddItem(context.Background(), "", tt.productID, tt.quantity)
			if err != tt.err {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestCartServiceImpl_AddItemMergedQuantityRespectsStock(t *testing.T) {
	svc, _ := newTestCartService(t, time.Hour)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", "p2", 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// 2 already in the cart, stock is 3; adding 2 more must fail.
	_, err = svc.AddItem(ctx, cart.ID, "p2", 2)
	if err != domain.ErrInsufficientStock {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}

	// The cart is unchanged.
	cart, err = svc.GetContents(ctx, cart.ID)
	if err != nil {
		t.Fatalf("GetContents failed: %v", err)
	}
	if cart.TotalItems() != 2 {
		t.Errorf("expected quantity to stay 2, got %d", cart.TotalItems())
	}
}

func TestCartServiceImpl_AddItemUnknownSessionStartsFresh(t *testing.T) {
	svc, _ := newTestCartService(t, time.Hour)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "never-existed", "p1", 1)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if cart.ID == "never-existed" {
		t.Error("expected a freshly generated session id")
	}
	if cart.TotalItems() != 1 {
		t.Errorf("expected 1 item, got %d", cart.TotalItems())
	}
}

func TestCartServiceImpl_GetContentsTotals(t *testing.T) {
	svc, _ := newTestCartService(t, time.Hour)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", "p1", 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	contents, err := svc.GetContents(ctx, cart.ID)
	if err != nil {
		t.Fatalf("GetContents failed: %v", err)
	}
	if contents.TotalItems() != 2 {
		t.Errorf("expected totalItems 2, got %d", contents.TotalItems())
	}
	if contents.TotalAmount() != 59.98 {
		t.Errorf("expected totalAmount 59.98, got %v", contents.TotalAmount())
	}
}

func TestCartServiceImpl_GetContentsExpired(t *testing.T) {
	svc, mr := newTestCartService(t, time.Minute)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", "p1", 1)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, err = svc.GetContents(ctx, cart.ID)
	if err != domain.ErrCartNotFound {
		t.Errorf("expected ErrCartNotFound after TTL elapsed, got %v", err)
	}
}

func TestCartServiceImpl_UpdateItem(t *testing.T) {
	svc, _ := newTestCartService(t, time.Hour)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", "p1", 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// Replace quantity.
	updated, err := svc.UpdateItem(ctx, cart.ID, "p1", 5)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if updated.Items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", updated.Items[0].Quantity)
	}
	if updated.Items[0].UnitPrice != 29.99 {
		t.Errorf("expected price snapshot kept, got %v", updated.Items[0].UnitPrice)
	}

	// Quantity zero removes the line.
	updated, err = svc.UpdateItem(ctx, cart.ID, "p1", 0)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if len(updated.Items) != 0 {
		t.Errorf("expected no lines, got %d", len(updated.Items))
	}
}

func TestCartServiceImpl_UpdateItemErrors(t *testing.T) {
	svc, _ := newTestCartService(t, time.Hour)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", "p1", 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		productID string
		quantity  int
		err       error
	}{
		{"negative quantity", cart.ID, "p1", -1, domain.ErrInvalidQuantity},
		{"missing session", "nope", "p1", 1, domain.ErrCartNotFound},
		{"missing line", cart.ID, "p2", 1, domain.ErrLineItemNotFound},
		{"missing line removal", cart.ID, "p2", 0, domain.ErrLineItemNotFound},
		{"over stock", cart.ID, "p1", 11, domain.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateItem(ctx, tt.sessionID, tt.productID, tt.quantity)
			if err != tt.err {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestCartServiceImpl_ClearIdempotent(t *testing.T) {
	svc, _ := newTestCartService(t, time.Hour)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", "p1", 1)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := svc.Clear(ctx, cart.ID); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := svc.Clear(ctx, cart.ID); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}

	_, err = svc.GetContents(ctx, cart.ID)
	if err != domain.ErrCartNotFound {
		t.Errorf("expected ErrCartNotFound after clear, got %v", err)
	}
}
