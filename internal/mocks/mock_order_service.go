package mocks

import (
	"context"
	"time"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// MockOrderService implements domain.OrderService for testing
type MockOrderService struct {
	CreateOrderFunc  func(ctx context.Context, sessionID, phone string) (*domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error)
	GetOrderFunc     func(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrdersFunc   func(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
}

// NewMockOrderService creates a new MockOrderService
func NewMockOrderService() *MockOrderService {
	return &MockOrderService{}
}

// CreateOrder implements domain.OrderService
func (m *MockOrderService) CreateOrder(ctx context.Context, sessionID, phone string) (*domain.Order, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, sessionID, phone)
	}
	return TestOrder(domain.OrderPending), nil
}

// UpdateStatus implements domain.OrderService
func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, orderID, newStatus)
	}
	return TestOrder(newStatus), nil
}

// GetOrder implements domain.OrderService
func (m *MockOrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, orderID)
	}
	return TestOrder(domain.OrderPending), nil
}

// ListOrders implements domain.OrderService
func (m *MockOrderService) ListOrders(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx, status, limit, offset)
	}
	return []*domain.Order{TestOrder(domain.OrderPending)}, nil
}

// TestOrder builds a one-line order usable as a default mock result.
func TestOrder(status domain.OrderStatus) *domain.Order {
	now := time.Now()
	return &domain.Order{
		ID:            "order-1",
		OrderNumber:   "PFL-20260829-AB12CD",
		CustomerPhone: "+40712345678",
		Items: []domain.OrderItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: 29.99, Subtotal: 59.98},
		},
		TotalAmount: 59.98,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Compile-time interface compliance verification
var _ domain.OrderService = (*MockOrderService)(nil)
