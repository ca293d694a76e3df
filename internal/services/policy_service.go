package services

import (
	"github.com/casbin/casbin/v2"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// PolicyServiceImpl implements domain.PolicyService on a Casbin enforcer.
// Admin operations are gated on CheckPermission before they reach the order
// core; the core itself only ever sees an already-authorized caller.
type PolicyServiceImpl struct {
	enforcer *casbin.Enforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// CheckPermission implements domain.PolicyService
func (s *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}

// AddPolicy implements domain.PolicyService
func (s *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	if _, err := s.enforcer.AddPolicy(role, resource, action); err != nil {
		return err
	}
	return s.enforcer.SavePolicy()
}

// GetPolicies implements domain.PolicyService
func (s *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := s.enforcer.GetPolicy()
	return policies
}
