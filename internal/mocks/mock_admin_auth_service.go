package mocks

import (
	"context"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// MockAdminAuthService implements domain.AdminAuthService for testing
type MockAdminAuthService struct {
	LoginFunc func(ctx context.Context, email, password string) (*domain.AdminAuthResult, error)
}

// NewMockAdminAuthService creates a new MockAdminAuthService
func NewMockAdminAuthService() *MockAdminAuthService {
	return &MockAdminAuthService{}
}

// Login implements domain.AdminAuthService
func (m *MockAdminAuthService) Login(ctx context.Context, email, password string) (*domain.AdminAuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.AdminAuthResult{
		Admin:       &domain.Admin{ID: 1, Email: email, Role: "admin"},
		AccessToken: "mock-access-token",
		ExpiresIn:   900,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.AdminAuthService = (*MockAdminAuthService)(nil)
