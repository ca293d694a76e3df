package services

import (
	"context"
	"time"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// AdminAuthServiceImpl implements domain.AdminAuthService
type AdminAuthServiceImpl struct {
	adminRepo   domain.AdminRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	accessTTL   time.Duration
}

// NewAdminAuthService creates a new back-office auth service.
func NewAdminAuthService(
	adminRepo domain.AdminRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	accessTTL time.Duration,
) domain.AdminAuthService {
	return &AdminAuthServiceImpl{
		adminRepo:   adminRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		accessTTL:   accessTTL,
	}
}

// Login implements domain.AdminAuthService. Unknown accounts and wrong
// passwords are indistinguishable to the caller.
func (s *AdminAuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AdminAuthResult, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(admin.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(admin.ID, admin.Role)
	if err != nil {
		return nil, err
	}

	return &domain.AdminAuthResult{
		Admin:       admin,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}
