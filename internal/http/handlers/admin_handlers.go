package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// AdminHandlers handles back-office HTTP requests
type AdminHandlers struct {
	authSvc  domain.AdminAuthService
	orderSvc domain.OrderService
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(authSvc domain.AdminAuthService, orderSvc domain.OrderService) *AdminHandlers {
	return &AdminHandlers{authSvc: authSvc, orderSvc: orderSvc}
}

// LoginRequest represents an admin login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateStatusRequest represents an order status change request
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Login handles admin login
func (h *AdminHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token": result.AccessToken,
			"token_type":   "Bearer",
			"expires_in":   result.ExpiresIn,
			"admin": gin.H{
				"id":    result.Admin.ID,
				"email": result.Admin.Email,
				"role":  result.Admin.Role,
			},
		},
	})
}

// ListOrders handles listing orders with optional status filter and paging
func (h *AdminHandlers) ListOrders(c *gin.Context) {
	status := domain.OrderStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}

	limit, ok := queryInt(c, "limit", 50)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset"})
		return
	}

	orders, err := h.orderSvc.ListOrders(c.Request.Context(), status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	items := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		items = append(items, orderResponse(order))
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"orders": items, "count": len(items)}})
}

// GetOrder handles reading a single order
func (h *AdminHandlers) GetOrder(c *gin.Context) {
	order, err := h.orderSvc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == domain.ErrOrderNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orderResponse(order)})
}

// UpdateOrderStatus handles moving an order through its lifecycle
func (h *AdminHandlers) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderSvc.UpdateStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		switch err {
		case domain.ErrOrderNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case domain.ErrInvalidTransition:
			c.JSON(http.StatusConflict, gin.H{"error": "Status transition not allowed"})
		case domain.ErrConcurrentModification:
			c.JSON(http.StatusConflict, gin.H{"error": "Order was modified concurrently, retry"})
		case domain.ErrNotificationFailed:
			// The transition is committed; only the customer SMS failed.
			c.JSON(http.StatusOK, gin.H{
				"data":    orderResponse(order),
				"warning": "Status notification SMS could not be delivered",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orderResponse(order)})
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
