package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// ProductRepositoryImpl implements domain.ProductCatalog using GORM. The
// lifecycle core only reads from it; catalog writes happen elsewhere.
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// DBProduct represents the database model for Product (with GORM tags)
type DBProduct struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"size:255"`
	Price       float64   `gorm:""`
	Stock       int       `gorm:""`
	IsAvailable bool      `gorm:"index"`
	CreatedAt   time.Time `gorm:""`
	UpdatedAt   time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (DBProduct) TableName() string {
	return "products"
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domain.ProductCatalog {
	return &ProductRepositoryImpl{db: db}
}

// FindByID implements domain.ProductCatalog
func (r *ProductRepositoryImpl) FindByID(ctx context.Context, productID string) (*domain.Product, error) {
	var dbProduct DBProduct
	err := r.db.WithContext(ctx).Where("id = ?", productID).First(&dbProduct).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbProduct), nil
}

// IsAvailable implements domain.ProductCatalog
func (r *ProductRepositoryImpl) IsAvailable(ctx context.Context, productID string) (bool, error) {
	product, err := r.FindByID(ctx, productID)
	if err != nil {
		return false, err
	}
	return product.IsAvailable, nil
}

// Stock implements domain.ProductCatalog
func (r *ProductRepositoryImpl) Stock(ctx context.Context, productID string) (int, error) {
	product, err := r.FindByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return product.Stock, nil
}

// Price implements domain.ProductCatalog
func (r *ProductRepositoryImpl) Price(ctx context.Context, productID string) (float64, error) {
	product, err := r.FindByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return product.Price, nil
}

// dbToDomain converts database product to domain product
func (r *ProductRepositoryImpl) dbToDomain(dbProduct *DBProduct) *domain.Product {
	return &domain.Product{
		ID:          dbProduct.ID,
		Name:        dbProduct.Name,
		Price:       dbProduct.Price,
		Stock:       dbProduct.Stock,
		IsAvailable: dbProduct.IsAvailable,
		CreatedAt:   dbProduct.CreatedAt,
		UpdatedAt:   dbProduct.UpdatedAt,
	}
}
