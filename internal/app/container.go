package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/config"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/infrastructure/auth"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/infrastructure/database"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/infrastructure/i18n"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/infrastructure/notifications"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/infrastructure/repositories"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	RecordStore domain.RecordStore
	CartRepo    domain.CartRepository
	OrderRepo   domain.OrderRepository
	ProductRepo domain.ProductCatalog
	AdminRepo   domain.AdminRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	Messages        domain.MessageCatalog
	RateLimiter     domain.RateLimiter
	CartSvc         domain.CartService
	VerificationSvc domain.VerificationService
	OrderSvc        domain.OrderService
	AdminAuthSvc    domain.AdminAuthService
	PolicySvc       domain.PolicyService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	container.initRepositories()

	if err := container.initServices(); err != nil {
		return nil, err
	}

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	return nil
}

func (c *Container) initRepositories() {
	c.RecordStore = repositories.NewRecordStore(c.RedisClient)
	c.CartRepo = repositories.NewCartRepository(c.RedisClient, c.RecordStore)
	c.OrderRepo = repositories.NewOrderRepository(c.DB)
	c.ProductRepo = repositories.NewProductRepository(c.DB)
	c.AdminRepo = repositories.NewAdminRepository(c.DB)
}

func (c *Container) initServices() error {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
	)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)

	messages, err := i18n.LoadCatalog(c.Config.MessagesPath, c.Config.DefaultLocale)
	if err != nil {
		return err
	}
	c.Messages = messages

	c.RateLimiter = repositories.NewRateLimiter(c.RedisClient, "verify:rate:", c.Config.RateWindow, c.Config.RateLimit)
	c.CartSvc = services.NewCartService(c.CartRepo, c.ProductRepo, c.Config.CartTTL)

	verificationConfig := services.VerificationConfig{
		Length:      c.Config.VerificationLength,
		TTL:         c.Config.VerificationTTL,
		MaxAttempts: c.Config.VerificationMaxAttempts,
		VerifiedTTL: c.Config.VerifiedTTL,
		Locale:      c.Config.DefaultLocale,
	}
	c.VerificationSvc = services.NewVerificationService(
		c.RecordStore,
		c.RedisClient,
		c.RateLimiter,
		c.NotificationSvc,
		c.Messages,
		verificationConfig,
	)

	c.OrderSvc = services.NewOrderService(c.OrderRepo, c.CartSvc, c.VerificationSvc, c.NotificationSvc, c.Messages, c.Config.DefaultLocale)
	c.AdminAuthSvc = services.NewAdminAuthService(c.AdminRepo, c.PasswordSvc, c.TokenSvc, c.Config.AccessTTL)

	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
