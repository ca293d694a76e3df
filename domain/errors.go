package domain

import "errors"

// Validation errors
var (
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

// Cart errors
var (
	ErrCartNotFound     = errors.New("cart session not found")
	ErrLineItemNotFound = errors.New("cart line item not found")
	ErrCartEmpty        = errors.New("cart session is empty")
)

// Verification errors
var (
	ErrRateLimited           = errors.New("verification issuance rate limit exceeded")
	ErrCodeNotFound          = errors.New("verification code not found")
	ErrCodeMismatch          = errors.New("verification code does not match")
	ErrCodeAttemptsExhausted = errors.New("verification attempts exhausted")
	ErrPhoneNotVerified      = errors.New("phone number not verified")
)

// Order errors
var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderNumberTaken       = errors.New("order number already taken")
	ErrInvalidTransition      = errors.New("invalid order status transition")
	ErrConcurrentModification = errors.New("concurrent modification, retry the operation")
)

// Delivery errors
var (
	// ErrNotificationFailed reports a failed SMS dispatch. The operation that
	// triggered the send has already committed; callers surface this as a
	// warning, never as a rollback.
	ErrNotificationFailed = errors.New("notification delivery failed")
)

// Admin auth errors
var (
	ErrAdminNotFound      = errors.New("admin account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenMalformed     = errors.New("malformed token")
	ErrUnauthorized       = errors.New("unauthorized access")
)
