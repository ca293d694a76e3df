package mocks

import "github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"

// MockPolicyService implements domain.PolicyService for testing
type MockPolicyService struct {
	CheckPermissionFunc func(role, resource, action string) (bool, error)
	AddPolicyFunc       func(role, resource, action string) error
	GetPoliciesFunc     func() [][]string
}

// NewMockPolicyService creates a new MockPolicyService
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

// CheckPermission evaluates a permission check. Default: allow admins only.
func (m *MockPolicyService) CheckPermission(role, resource, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(role, resource, action)
	}
	return role == "admin", nil
}

// AddPolicy records a policy
func (m *MockPolicyService) AddPolicy(role, resource, action string) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(role, resource, action)
	}
	return nil
}

// GetPolicies lists policies
func (m *MockPolicyService) GetPolicies() [][]string {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.PolicyService = (*MockPolicyService)(nil)
