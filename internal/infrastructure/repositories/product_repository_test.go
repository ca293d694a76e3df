package repositories

import (
	"context"
	"testing"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

func TestProductRepositoryImpl_Reads(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&DBProduct{ID: "p1", Name: "Miere de salcam", Price: 29.99, Stock: 10, IsAvailable: true})
	db.Create(&DBProduct{ID: "p2", Name: "Branza de burduf", Price: 45.00, Stock: 0, IsAvailable: false})

	repo := NewProductRepository(db)
	ctx := context.Background()

	product, err := repo.FindByID(ctx, "p1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if product.Name != "Miere de salcam" {
		t.Errorf("unexpected product: %+v", product)
	}

	available, err := repo.IsAvailable(ctx, "p1")
	if err != nil || !available {
		t.Errorf("expected p1 available, got %v err=%v", available, err)
	}
	available, err = repo.IsAvailable(ctx, "p2")
	if err != nil || available {
		t.Errorf("expected p2 unavailable, got %v err=%v", available, err)
	}

	stock, err := repo.Stock(ctx, "p1")
	if err != nil || stock != 10 {
		t.Errorf("expected stock 10, got %d err=%v", stock, err)
	}

	price, err := repo.Price(ctx, "p1")
	if err != nil || price != 29.99 {
		t.Errorf("expected price 29.99, got %v err=%v", price, err)
	}

	if _, err := repo.FindByID(ctx, "missing"); err != domain.ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}
