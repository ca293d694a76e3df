package mocks

import (
	"context"
	"time"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// MockVerificationService implements domain.VerificationService for testing
type MockVerificationService struct {
	IssueCodeFunc           func(ctx context.Context, phone string) (*domain.VerificationCode, error)
	VerifyCodeFunc          func(ctx context.Context, phone, code string) (int, error)
	ConsumeVerificationFunc func(ctx context.Context, phone string) error
}

// NewMockVerificationService creates a new MockVerificationService
func NewMockVerificationService() *MockVerificationService {
	return &MockVerificationService{}
}

// IssueCode implements domain.VerificationService
func (m *MockVerificationService) IssueCode(ctx context.Context, phone string) (*domain.VerificationCode, error) {
	if m.IssueCodeFunc != nil {
		return m.IssueCodeFunc(ctx, phone)
	}
	now := time.Now()
	return &domain.VerificationCode{
		Phone:     phone,
		Code:      "123456",
		IssuedAt:  now,
		ExpiresAt: now.Add(10 * time.Minute),
	}, nil
}

// VerifyCode implements domain.VerificationService
func (m *MockVerificationService) VerifyCode(ctx context.Context, phone, code string) (int, error) {
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, phone, code)
	}
	return 0, nil
}

// ConsumeVerification implements domain.VerificationService. The default
// treats every phone as verified.
func (m *MockVerificationService) ConsumeVerification(ctx context.Context, phone string) error {
	if m.ConsumeVerificationFunc != nil {
		return m.ConsumeVerificationFunc(ctx, phone)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.VerificationService = (*MockVerificationService)(nil)
