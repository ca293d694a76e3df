package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// CartServiceImpl implements domain.CartService. Mutations run through the
// repository's compare-and-swap loop; validation against the product catalog
// happens inside the mutate callback so a retried swap re-checks stock
// against the quantity already in the cart.
type CartServiceImpl struct {
	cartRepo domain.CartRepository
	catalog  domain.ProductCatalog
	ttl      time.Duration
}

// NewCartService creates a new cart session manager.
func NewCartService(cartRepo domain.CartRepository, catalog domain.ProductCatalog, ttl time.Duration) domain.CartService {
	return &CartServiceImpl{
		cartRepo: cartRepo,
		catalog:  catalog,
		ttl:      ttl,
	}
}

// AddItem implements domain.CartService. A missing or expired session id
// transparently starts a new session.
func (s *CartServiceImpl) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.CartSession, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, domain.ErrProductUnavailable
	}

	if sessionID != "" {
		cart, err := s.cartRepo.Update(ctx, sessionID, func(c *domain.CartSession) error {
			merged := quantity
			if item := c.FindItem(productID); item != nil {
				merged += item.Quantity
			}
			if merged > product.Stock {
				return domain.ErrInsufficientStock
			}
			c.MergeItem(productID, quantity, product.Price)
			return nil
		})
		if err == nil {
			return cart, nil
		}
		if err != domain.ErrCartNotFound {
			return nil, err
		}
		// Session vanished or expired; fall through to a fresh one.
	}

	if quantity > product.Stock {
		return nil, domain.ErrInsufficientStock
	}

	now := time.Now()
	cart := &domain.CartSession{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	cart.MergeItem(productID, quantity, product.Price)

	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetContents implements domain.CartService
func (s *CartServiceImpl) GetContents(ctx context.Context, sessionID string) (*domain.CartSession, error) {
	return s.cartRepo.Find(ctx, sessionID)
}

// UpdateItem implements domain.CartService. Quantity zero removes the line;
// any other quantity replaces it after re-validating stock. The unit price
// snapshot of the existing line is kept.
func (s *CartServiceImpl) UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.CartSession, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	if quantity == 0 {
		return s.cartRepo.Update(ctx, sessionID, func(c *domain.CartSession) error {
			if !c.RemoveItem(productID) {
				return domain.ErrLineItemNotFound
			}
			return nil
		})
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, domain.ErrProductUnavailable
	}
	if quantity > product.Stock {
		return nil, domain.ErrInsufficientStock
	}

	return s.cartRepo.Update(ctx, sessionID, func(c *domain.CartSession) error {
		item := c.FindItem(productID)
		if item == nil {
			return domain.ErrLineItemNotFound
		}
		item.Quantity = quantity
		return nil
	})
}

// Clear implements domain.CartService. Idempotent.
func (s *CartServiceImpl) Clear(ctx context.Context, sessionID string) error {
	return s.cartRepo.Delete(ctx, sessionID)
}
