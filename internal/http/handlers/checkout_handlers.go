package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// CheckoutHandlers handles phone verification and order placement HTTP requests
type CheckoutHandlers struct {
	verifySvc domain.VerificationService
	orderSvc  domain.OrderService
}

// NewCheckoutHandlers creates new checkout handlers
func NewCheckoutHandlers(verifySvc domain.VerificationService, orderSvc domain.OrderService) *CheckoutHandlers {
	return &CheckoutHandlers{verifySvc: verifySvc, orderSvc: orderSvc}
}

// SendCodeRequest represents a verification code request
type SendCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// VerifyCodeRequest represents a code confirmation request
type VerifyCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// CreateOrderRequest represents an order placement request
type CreateOrderRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// SendCode handles issuing a verification code via SMS
func (h *CheckoutHandlers) SendCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.verifySvc.IssueCode(c.Request.Context(), req.Phone)
	if err != nil {
		switch err {
		case domain.ErrInvalidPhone:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		case domain.ErrRateLimited:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many verification requests, try again later"})
		case domain.ErrNotificationFailed:
			// The code is active and verifiable; only the SMS leg failed.
			c.JSON(http.StatusOK, gin.H{
				"data":    gin.H{"phone": record.Phone, "expires_at": record.ExpiresAt},
				"warning": "Verification SMS could not be delivered",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"phone": record.Phone, "expires_at": record.ExpiresAt},
	})
}

// VerifyCode handles confirming a verification code
func (h *CheckoutHandlers) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	remaining, err := h.verifySvc.VerifyCode(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		switch err {
		case domain.ErrInvalidPhone:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		case domain.ErrCodeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "No active verification code for this phone"})
		case domain.ErrCodeMismatch:
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":              "Incorrect verification code",
				"attempts_remaining": remaining,
			})
		case domain.ErrCodeAttemptsExhausted:
			c.JSON(http.StatusGone, gin.H{"error": "Too many incorrect attempts, request a new code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Phone number verified"}})
}

// CreateOrder handles placing an order from a cart session
func (h *CheckoutHandlers) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderSvc.CreateOrder(c.Request.Context(), req.SessionID, req.Phone)
	if err != nil {
		switch err {
		case domain.ErrInvalidPhone:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		case domain.ErrCartNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart session not found"})
		case domain.ErrCartEmpty:
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart is empty"})
		case domain.ErrPhoneNotVerified:
			c.JSON(http.StatusForbidden, gin.H{"error": "Phone number not verified"})
		case domain.ErrNotificationFailed:
			// The order is committed; only the confirmation SMS failed.
			c.JSON(http.StatusCreated, gin.H{
				"data":    orderResponse(order),
				"warning": "Order confirmation SMS could not be delivered",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": orderResponse(order)})
}

func orderResponse(order *domain.Order) gin.H {
	return gin.H{
		"id":             order.ID,
		"order_number":   order.OrderNumber,
		"customer_phone": order.CustomerPhone,
		"items":          order.Items,
		"total_amount":   order.TotalAmount,
		"status":         order.Status,
		"created_at":     order.CreatedAt,
		"updated_at":     order.UpdatedAt,
	}
}
