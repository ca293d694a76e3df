package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// statusRetries bounds the internal retry loop on contended status updates.
const statusRetries = 3

// numberRetries bounds regeneration when a generated order number collides
// with an existing one.
const numberRetries = 3

var statusMessageKeys = map[domain.OrderStatus]string{
	domain.OrderConfirmed: "sms.order_confirmed",
	domain.OrderCompleted: "sms.order_completed",
	domain.OrderCancelled: "sms.order_cancelled",
}

// OrderServiceImpl implements domain.OrderService. It is the sole mutator of
// order status. Notifications are dispatched after the status write commits
// and never roll it back.
type OrderServiceImpl struct {
	orderRepo domain.OrderRepository
	cartSvc   domain.CartService
	verifySvc domain.VerificationService
	notifier  domain.NotificationService
	messages  domain.MessageCatalog
	locale    string
}

// NewOrderService creates a new order lifecycle manager.
func NewOrderService(
	orderRepo domain.OrderRepository,
	cartSvc domain.CartService,
	verifySvc domain.VerificationService,
	notifier domain.NotificationService,
	messages domain.MessageCatalog,
	locale string,
) domain.OrderService {
	return &OrderServiceImpl{
		orderRepo: orderRepo,
		cartSvc:   cartSvc,
		verifySvc: verifySvc,
		notifier:  notifier,
		messages:  messages,
		locale:    locale,
	}
}

// CreateOrder implements domain.OrderService. The phone must carry a live
// verified mark from a successful code check; the mark is spent here, so a
// single verification backs a single order. The call materializes the order
// from the cart snapshot and consumes the session. Returns
// ErrNotificationFailed alongside the created order when the confirmation
// SMS could not be dispatched.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, sessionID, phone string) (*domain.Order, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartSvc.GetContents(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrCartEmpty
	}

	if err := s.verifySvc.ConsumeVerification(ctx, normalized); err != nil {
		return nil, err
	}

	now := time.Now()

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		})
	}

	order := &domain.Order{
		ID:            uuid.NewString(),
		CustomerPhone: normalized,
		Items:         items,
		TotalAmount:   cart.TotalAmount(),
		Status:        domain.OrderPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for attempt := 0; ; attempt++ {
		orderNumber, err := generateOrderNumber(now)
		if err != nil {
			return nil, err
		}
		order.OrderNumber = orderNumber

		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrOrderNumberTaken) && attempt < numberRetries {
			continue
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Successful order creation always consumes the cart.
	if err := s.cartSvc.Clear(ctx, sessionID); err != nil {
		log.Printf("orders: failed to clear cart session %s after order %s: %v", sessionID, order.OrderNumber, err)
	}

	message := fmt.Sprintf(s.messages.Message("sms.order_created", s.locale), order.OrderNumber)
	if err := s.notifier.SendSMS(normalized, message); err != nil {
		log.Printf("orders: confirmation sms for order %s failed: %v", order.OrderNumber, err)
		return order, domain.ErrNotificationFailed
	}

	return order, nil
}

// UpdateStatus implements domain.OrderService. The transition is validated
// against the freshly read status and written conditionally; a lost race is
// retried a bounded number of times before surfacing
// ErrConcurrentModification. Returns ErrNotificationFailed alongside the
// updated order when the customer notification could not be dispatched.
func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error) {
	if !newStatus.IsValid() {
		return nil, domain.ErrInvalidTransition
	}

	for i := 0; i < statusRetries; i++ {
		order, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}

		if !domain.CanTransition(order.Status, newStatus) {
			return nil, domain.ErrInvalidTransition
		}

		now := time.Now()
		applied, err := s.orderRepo.UpdateStatus(ctx, orderID, order.Status, newStatus, now)
		if err != nil {
			return nil, err
		}
		if !applied {
			// Someone else moved the status first; re-read and re-validate.
			continue
		}

		order.Status = newStatus
		order.UpdatedAt = now

		if key, ok := statusMessageKeys[newStatus]; ok {
			message := fmt.Sprintf(s.messages.Message(key, s.locale), order.OrderNumber)
			if err := s.notifier.SendSMS(order.CustomerPhone, message); err != nil {
				log.Printf("orders: status notification for order %s failed: %v", order.OrderNumber, err)
				return order, domain.ErrNotificationFailed
			}
		}

		return order, nil
	}

	return nil, domain.ErrConcurrentModification
}

// GetOrder implements domain.OrderService
func (s *OrderServiceImpl) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

// ListOrders implements domain.OrderService
func (s *OrderServiceImpl) ListOrders(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	return s.orderRepo.List(ctx, status, limit, offset)
}

// generateOrderNumber builds a human-readable order number like
// PFL-20260829-4F2A1C. Uniqueness is enforced by the column's unique index;
// CreateOrder regenerates on a collision.
func generateOrderNumber(now time.Time) (string, error) {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return fmt.Sprintf("PFL-%s-%s", now.Format("20060102"), strings.ToUpper(hex.EncodeToString(suffix))), nil
}
