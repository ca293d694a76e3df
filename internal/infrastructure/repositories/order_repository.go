package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// OrderRepositoryImpl implements domain.OrderRepository using GORM
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// DBOrder represents the database model for Order (with GORM tags). Items are
// stored as a JSON snapshot; they are frozen at creation and never re-derived.
type DBOrder struct {
	ID            string    `gorm:"primaryKey;size:36"`
	OrderNumber   string    `gorm:"uniqueIndex;size:32"`
	CustomerPhone string    `gorm:"index;size:32"`
	Items         string    `gorm:"type:text"`
	TotalAmount   float64   `gorm:""`
	Status        string    `gorm:"index;size:16"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBOrder) TableName() string {
	return "orders"
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Create implements domain.OrderRepository. A collision on the order number's
// unique index surfaces as ErrOrderNumberTaken so the caller can regenerate.
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *domain.Order) error {
	dbOrder, err := r.domainToDB(order)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(dbOrder).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrOrderNumberTaken
		}
		return err
	}
	return nil
}

// FindByID implements domain.OrderRepository
func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var dbOrder DBOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbOrder).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbOrder)
}

// List implements domain.OrderRepository. An empty status lists all orders.
func (r *OrderRepositoryImpl) List(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	query := r.db.WithContext(ctx).Model(&DBOrder{}).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var dbOrders []DBOrder
	if err := query.Find(&dbOrders).Error; err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(dbOrders))
	for i := range dbOrders {
		order, err := r.dbToDomain(&dbOrders[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// UpdateStatus implements domain.OrderRepository. The write is conditional on
// the current status so concurrent transitions cannot interleave; a false
// return means the guard no longer matched.
func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&DBOrder{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// domainToDB converts domain order to database order
func (r *OrderRepositoryImpl) domainToDB(order *domain.Order) (*DBOrder, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}
	return &DBOrder{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerPhone: order.CustomerPhone,
		Items:         string(items),
		TotalAmount:   order.TotalAmount,
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}, nil
}

// dbToDomain converts database order to domain order
func (r *OrderRepositoryImpl) dbToDomain(dbOrder *DBOrder) (*domain.Order, error) {
	var items []domain.OrderItem
	if dbOrder.Items != "" {
		if err := json.Unmarshal([]byte(dbOrder.Items), &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
		}
	}
	return &domain.Order{
		ID:            dbOrder.ID,
		OrderNumber:   dbOrder.OrderNumber,
		CustomerPhone: dbOrder.CustomerPhone,
		Items:         items,
		TotalAmount:   dbOrder.TotalAmount,
		Status:        domain.OrderStatus(dbOrder.Status),
		CreatedAt:     dbOrder.CreatedAt,
		UpdatedAt:     dbOrder.UpdatedAt,
	}, nil
}
