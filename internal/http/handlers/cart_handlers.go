package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// CartHandlers handles cart session HTTP requests
type CartHandlers struct {
	cartSvc domain.CartService
}

// NewCartHandlers creates new cart handlers
func NewCartHandlers(cartSvc domain.CartService) *CartHandlers {
	return &CartHandlers{cartSvc: cartSvc}
}

// AddItemRequest represents an add-to-cart request. SessionID is empty on the
// first add; the response carries the generated session ID.
type AddItemRequest struct {
	SessionID string `json:"session_id,omitempty"`
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// UpdateItemRequest represents a quantity change for an existing line.
// Quantity zero removes the line.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// AddItem handles adding a product to a cart session
func (h *CartHandlers) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.cartSvc.AddItem(c.Request.Context(), req.SessionID, req.ProductID, req.Quantity)
	if err != nil {
		switch err {
		case domain.ErrInvalidQuantity:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		case domain.ErrProductNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case domain.ErrProductUnavailable:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Product is not available"})
		case domain.ErrInsufficientStock:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient stock"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		}
		return
	}

	status := http.StatusOK
	if req.SessionID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": cartResponse(cart)})
}

// GetCart handles reading the contents of a cart session
func (h *CartHandlers) GetCart(c *gin.Context) {
	cart, err := h.cartSvc.GetContents(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if err == domain.ErrCartNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cartResponse(cart)})
}

// UpdateItem handles setting the quantity of an existing cart line
func (h *CartHandlers) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.cartSvc.UpdateItem(c.Request.Context(), c.Param("sessionId"), c.Param("productId"), *req.Quantity)
	if err != nil {
		switch err {
		case domain.ErrInvalidQuantity:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must not be negative"})
		case domain.ErrCartNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart session not found"})
		case domain.ErrLineItemNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not in cart"})
		case domain.ErrProductNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case domain.ErrInsufficientStock:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient stock"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cartResponse(cart)})
}

// ClearCart handles deleting a cart session
func (h *CartHandlers) ClearCart(c *gin.Context) {
	if err := h.cartSvc.Clear(c.Request.Context(), c.Param("sessionId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Cart cleared"}})
}

func cartResponse(cart *domain.CartSession) gin.H {
	items := make([]gin.H, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, gin.H{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
			"subtotal":   item.Subtotal(),
		})
	}
	return gin.H{
		"session_id":   cart.ID,
		"items":        items,
		"total_items":  cart.TotalItems(),
		"total_amount": cart.TotalAmount(),
		"created_at":   cart.CreatedAt,
		"updated_at":   cart.UpdatedAt,
		"expires_at":   cart.ExpiresAt,
	}
}
