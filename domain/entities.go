package domain

import "time"

// CartItem is a single line in a cart session. UnitPrice is a snapshot of the
// product price at the moment the line was created.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Subtotal returns quantity times the snapshotted unit price.
func (i CartItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// CartSession is an anonymous, time-bounded shopping cart. The TTL is fixed
// from creation; touching the cart never moves ExpiresAt.
type CartSession struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// ExpiredAt reports whether the session is past its deadline at the given time.
func (c *CartSession) ExpiredAt(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// MergeItem adds quantity for a product, folding into an existing line when
// one is present. A cart never holds two lines for the same product.
func (c *CartSession) MergeItem(productID string, quantity int, unitPrice float64) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice})
}

// FindItem returns the line for a product, or nil.
func (c *CartSession) FindItem(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// RemoveItem drops the line for a product. Returns false if no such line.
func (c *CartSession) RemoveItem(productID string) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// TotalItems is the sum of line quantities.
func (c *CartSession) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalAmount is the sum of line subtotals.
func (c *CartSession) TotalAmount() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// VerificationCode is a one-time numeric credential bound to a phone number.
// Remaining attempts live in a separate atomic counter, not on the record.
type VerificationCode struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the code is past its deadline at the given time.
func (v *VerificationCode) ExpiredAt(now time.Time) bool {
	return !v.ExpiresAt.After(now)
}

// PhoneVerification marks a phone as verified for a short window after a
// successful code check. Order creation consumes it exactly once.
type PhoneVerification struct {
	Phone      string    `json:"phone"`
	VerifiedAt time.Time `json:"verified_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the verification window has closed.
func (p *PhoneVerification) ExpiredAt(now time.Time) bool {
	return !p.ExpiresAt.After(now)
}

// OrderItem is a frozen snapshot of a cart line at checkout.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// Order is a placed order. Items and TotalAmount are frozen at creation; only
// Status and UpdatedAt mutate afterwards, and only through the order service.
type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"order_number"`
	CustomerPhone string      `json:"customer_phone"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"total_amount"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Product is the read-only catalog view this core validates carts against.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Admin is a back-office operator account.
type Admin struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminAuthResult is the outcome of a back-office login.
type AdminAuthResult struct {
	Admin       *Admin
	AccessToken string
	ExpiresIn   int64
}
