package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// AdminRepositoryImpl implements domain.AdminRepository using GORM
type AdminRepositoryImpl struct {
	db *gorm.DB
}

// DBAdmin represents the database model for Admin (with GORM tags)
type DBAdmin struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:255"`
	PasswordHash string    `gorm:"column:password"`
	Role         string    `gorm:"index;size:64"`
	CreatedAt    time.Time `gorm:""`
	UpdatedAt    time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (DBAdmin) TableName() string {
	return "admins"
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) domain.AdminRepository {
	return &AdminRepositoryImpl{db: db}
}

// Create implements domain.AdminRepository
func (r *AdminRepositoryImpl) Create(ctx context.Context, admin *domain.Admin) error {
	dbAdmin := r.domainToDB(admin)
	if err := r.db.WithContext(ctx).Create(dbAdmin).Error; err != nil {
		return err
	}
	admin.ID = dbAdmin.ID
	return nil
}

// FindByEmail implements domain.AdminRepository
func (r *AdminRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var dbAdmin DBAdmin
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbAdmin).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAdmin), nil
}

// FindByID implements domain.AdminRepository
func (r *AdminRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Admin, error) {
	var dbAdmin DBAdmin
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAdmin).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAdmin), nil
}

// domainToDB converts domain admin to database admin
func (r *AdminRepositoryImpl) domainToDB(admin *domain.Admin) *DBAdmin {
	return &DBAdmin{
		ID:           admin.ID,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		Role:         admin.Role,
	}
}

// dbToDomain converts database admin to domain admin
func (r *AdminRepositoryImpl) dbToDomain(dbAdmin *DBAdmin) *domain.Admin {
	return &domain.Admin{
		ID:           dbAdmin.ID,
		Email:        dbAdmin.Email,
		PasswordHash: dbAdmin.PasswordHash,
		Role:         dbAdmin.Role,
		CreatedAt:    dbAdmin.CreatedAt,
		UpdatedAt:    dbAdmin.UpdatedAt,
	}
}
