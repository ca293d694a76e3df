package mocks

import (
	"context"
	"time"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// MockCartService implements domain.CartService for testing
type MockCartService struct {
	AddItemFunc     func(ctx context.Context, sessionID, productID string, quantity int) (*domain.CartSession, error)
	GetContentsFunc func(ctx context.Context, sessionID string) (*domain.CartSession, error)
	UpdateItemFunc  func(ctx context.Context, sessionID, productID string, quantity int) (*domain.CartSession, error)
	ClearFunc       func(ctx context.Context, sessionID string) error
}

// NewMockCartService creates a new MockCartService
func NewMockCartService() *MockCartService {
	return &MockCartService{}
}

// AddItem implements domain.CartService
func (m *MockCartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.CartSession, error) {
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, sessionID, productID, quantity)
	}
	return TestCartSession(sessionID), nil
}

// GetContents implements domain.CartService
func (m *MockCartService) GetContents(ctx context.Context, sessionID string) (*domain.CartSession, error) {
	if m.GetContentsFunc != nil {
		return m.GetContentsFunc(ctx, sessionID)
	}
	return TestCartSession(sessionID), nil
}

// UpdateItem implements domain.CartService
func (m *MockCartService) UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.CartSession, error) {
	if m.UpdateItemFunc != nil {
		return m.UpdateItemFunc(ctx, sessionID, productID, quantity)
	}
	return TestCartSession(sessionID), nil
}

// Clear implements domain.CartService
func (m *MockCartService) Clear(ctx context.Context, sessionID string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, sessionID)
	}
	return nil
}

// TestCartSession builds a one-line session usable as a default mock result.
func TestCartSession(sessionID string) *domain.CartSession {
	if sessionID == "" {
		sessionID = "test-session"
	}
	now := time.Now()
	return &domain.CartSession{
		ID:        sessionID,
		Items:     []domain.CartItem{{ProductID: "p1", Quantity: 2, UnitPrice: 29.99}},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

// Compile-time interface compliance verification
var _ domain.CartService = (*MockCartService)(nil)
