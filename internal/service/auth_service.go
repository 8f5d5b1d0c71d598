package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fixware/repairdesk/internal/auth"
	"github.com/fixware/repairdesk/internal/config"
	"github.com/fixware/repairdesk/internal/domain"
	"github.com/fixware/repairdesk/internal/repository"
	"github.com/fixware/repairdesk/internal/store"
	"github.com/fixware/repairdesk/pkg/util"
)

// AuthService coordinates customer registration and both login flows.
type AuthService struct {
	accounts   repository.AccountRepository
	admins     repository.AdminRepository
	directory  *store.UserDirectory
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	AdminRepo   repository.AdminRepository
	Directory   *store.UserDirectory
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		admins:     deps.AdminRepo,
		directory:  deps.Directory,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// RegisterCustomer creates a credentials account plus its profile. The
// profile uid equals the account id.
func (s *AuthService) RegisterCustomer(ctx context.Context, name, email, password string) (*domain.UserProfile, string, time.Time, error) {
	if s.accounts == nil {
		return nil, "", time.Time{}, util.NewStoreUnavailable()
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, util.NewConflict("email already registered", map[string]any{"email": email})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, util.MapError(err)
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", time.Time{}, util.MapError(err)
	}

	profile := &domain.UserProfile{
		UID:   account.ID,
		Name:  strings.TrimSpace(name),
		Email: email,
	}
	if err := s.directory.CreateProfile(ctx, profile); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(account.ID, domain.SubjectTypeCustomer, nil)
	if err != nil {
		return nil, "", time.Time{}, util.MapError(err)
	}
	return profile, token, expiresAt, nil
}

// LoginCustomer verifies credentials and issues a token.
func (s *AuthService) LoginCustomer(ctx context.Context, email, password string) (*domain.Account, string, time.Time, error) {
	if s.accounts == nil {
		return nil, "", time.Time{}, util.NewStoreUnavailable()
	}
	account, err := s.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, util.MapError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(account.ID, domain.SubjectTypeCustomer, nil)
	if err != nil {
		return nil, "", time.Time{}, util.MapError(err)
	}
	return account, token, expiresAt, nil
}

// LoginAdmin verifies back-office credentials and issues a token.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.AdminUser, string, time.Time, error) {
	if s.admins == nil {
		return nil, "", time.Time{}, util.NewStoreUnavailable()
	}
	admin, err := s.admins.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, util.MapError(err)
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}

	role := admin.Role
	token, expiresAt, err := s.tokenMgr.GenerateToken(admin.ID, domain.SubjectTypeAdmin, &role)
	if err != nil {
		return nil, "", time.Time{}, util.MapError(err)
	}
	return admin, token, expiresAt, nil
}

// ChangeAdminPassword rotates a back-office operator's password.
func (s *AuthService) ChangeAdminPassword(ctx context.Context, adminID, current, next string) error {
	if s.admins == nil {
		return util.NewStoreUnavailable()
	}
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("admin", map[string]any{"id": adminID})
		}
		return util.MapError(err)
	}
	if err := auth.ComparePassword(admin.PasswordHash, current); err != nil {
		return util.NewUnauthorized("current password incorrect")
	}
	if len(next) < 8 {
		return util.NewValidationError("password must be at least 8 characters", nil)
	}

	hash, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return util.MapError(err)
	}
	if err := s.admins.UpdatePassword(ctx, adminID, hash); err != nil {
		return util.MapError(err)
	}
	return nil
}
