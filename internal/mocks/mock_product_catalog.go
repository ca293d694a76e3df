package mocks

import (
	"context"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// MockProductCatalog implements domain.ProductCatalog for testing
type MockProductCatalog struct {
	FindByIDFunc    func(ctx context.Context, productID string) (*domain.Product, error)
	IsAvailableFunc func(ctx context.Context, productID string) (bool, error)
	StockFunc       func(ctx context.Context, productID string) (int, error)
	PriceFunc       func(ctx context.Context, productID string) (float64, error)

	// Products backs the default behaviors when the Func fields are unset.
	Products map[string]*domain.Product
}

// NewMockProductCatalog creates a catalog pre-loaded with the given products.
func NewMockProductCatalog(products ...*domain.Product) *MockProductCatalog {
	m := &MockProductCatalog{Products: map[string]*domain.Product{}}
	for _, p := range products {
		m.Products[p.ID] = p
	}
	return m
}

// FindByID returns the product by id
func (m *MockProductCatalog) FindByID(ctx context.Context, productID string) (*domain.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, productID)
	}
	if p, ok := m.Products[productID]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

// IsAvailable reports product availability
func (m *MockProductCatalog) IsAvailable(ctx context.Context, productID string) (bool, error) {
	if m.IsAvailableFunc != nil {
		return m.IsAvailableFunc(ctx, productID)
	}
	p, err := m.FindByID(ctx, productID)
	if err != nil {
		return false, err
	}
	return p.IsAvailable, nil
}

// Stock returns product stock
func (m *MockProductCatalog) Stock(ctx context.Context, productID string) (int, error) {
	if m.StockFunc != nil {
		return m.StockFunc(ctx, productID)
	}
	p, err := m.FindByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}

// Price returns product price
func (m *MockProductCatalog) Price(ctx context.Context, productID string) (float64, error) {
	if m.PriceFunc != nil {
		return m.PriceFunc(ctx, productID)
	}
	p, err := m.FindByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return p.Price, nil
}

// Compile-time interface compliance verification
var _ domain.ProductCatalog = (*MockProductCatalog)(nil)
