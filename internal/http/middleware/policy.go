package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// PolicyMW wraps the policy service for middleware
type PolicyMW struct {
	policySvc domain.PolicyService
}

// NewPolicyMW creates new policy middleware wrapper
func NewPolicyMW(policySvc domain.PolicyService) *PolicyMW {
	return &PolicyMW{policySvc: policySvc}
}

// Enforce returns the role-based authorization middleware. It runs after
// AuthMiddleware and relies on the role it placed in the context.
func (mw *PolicyMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		role, exists := c.Get("admin_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Role not found in token"})
			c.Abort()
			return
		}

		allowed, err := mw.policySvc.CheckPermission(role.(string), c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	})
}
