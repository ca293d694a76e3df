package domain

import (
	"context"
	"time"
)

// RecordStore is an expiring key-value record capability of the storage
// collaborator. After the TTL elapses the record is unreachable via Get even
// when physical deletion lags.
type RecordStore interface {
	Put(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Take atomically reads and deletes a record, so concurrent callers
	// cannot both observe the same value.
	Take(ctx context.Context, key string, dest any) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Expirable lets a stored record carry its own deadline so that read paths
// can enforce expiry independently of the store's background cleanup.
type Expirable interface {
	ExpiredAt(now time.Time) bool
}

// CartRepository defines cart session data access operations.
type CartRepository interface {
	Create(ctx context.Context, cart *CartSession) error
	Find(ctx context.Context, sessionID string) (*CartSession, error)
	// Update applies mutate under a per-key compare-and-swap retry loop so
	// concurrent mutations of the same session never lose a write.
	Update(ctx context.Context, sessionID string, mutate func(*CartSession) error) (*CartSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// CartService defines the cart session manager operations.
type CartService interface {
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*CartSession, error)
	GetContents(ctx context.Context, sessionID string) (*CartSession, error)
	UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*CartSession, error)
	Clear(ctx context.Context, sessionID string) error
}

// RateLimiter caps the frequency of an action per key over a rolling window.
type RateLimiter interface {
	// Allow records one event for key and returns ErrRateLimited without
	// recording anything when the window is already at capacity.
	Allow(ctx context.Context, key string) error
}

// VerificationService issues and checks one-time phone verification codes.
type VerificationService interface {
	IssueCode(ctx context.Context, phone string) (*VerificationCode, error)
	// VerifyCode returns the attempts remaining after a retryable mismatch
	// (alongside ErrCodeMismatch). On success the code is consumed and the
	// phone is marked verified for a short window.
	VerifyCode(ctx context.Context, phone, code string) (int, error)
	// ConsumeVerification spends the verified mark left by a successful
	// VerifyCode. ErrPhoneNotVerified when no live mark exists.
	ConsumeVerification(ctx context.Context, phone string) error
}

// OrderRepository defines order data access operations.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, status OrderStatus, limit, offset int) ([]*Order, error)
	// UpdateStatus performs a conditional write guarded by the current
	// status. It returns false when the guard no longer matches.
	UpdateStatus(ctx context.Context, id string, from, to OrderStatus, at time.Time) (bool, error)
}

// OrderService defines the order lifecycle manager operations.
type OrderService interface {
	CreateOrder(ctx context.Context, sessionID, phone string) (*Order, error)
	UpdateStatus(ctx context.Context, orderID string, newStatus OrderStatus) (*Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListOrders(ctx context.Context, status OrderStatus, limit, offset int) ([]*Order, error)
}

// ProductCatalog is the read-only product collaborator carts validate against.
type ProductCatalog interface {
	FindByID(ctx context.Context, productID string) (*Product, error)
	IsAvailable(ctx context.Context, productID string) (bool, error)
	Stock(ctx context.Context, productID string) (int, error)
	Price(ctx context.Context, productID string) (float64, error)
}

// NotificationService is the outbound SMS transport collaborator. It is
// treated as unreliable; failures are reported, never fatal.
type NotificationService interface {
	SendSMS(to, message string) error
}

// MessageCatalog is the localization collaborator. The core emits abstract
// message keys; the catalog resolves them per locale.
type MessageCatalog interface {
	Message(key, locale string) string
}

// AdminRepository defines back-office account data access.
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByID(ctx context.Context, id uint) (*Admin, error)
}

// AdminAuthService defines back-office authentication.
type AdminAuthService interface {
	Login(ctx context.Context, email, password string) (*AdminAuthResult, error)
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines admin access token operations.
type TokenService interface {
	GenerateAccessToken(adminID uint, role string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// TokenClaims represents JWT token claims.
type TokenClaims struct {
	AdminID   uint   `json:"admin_id"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// PolicyService evaluates whether a caller role may perform an action on a
// resource. Admin operations are gated on it before reaching the core.
type PolicyService interface {
	CheckPermission(role, resource, action string) (bool, error)
	AddPolicy(role, resource, action string) error
	GetPolicies() [][]string
}
