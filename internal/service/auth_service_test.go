package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fixware/repairdesk/internal/config"
	"github.com/fixware/repairdesk/internal/domain"
	"github.com/fixware/repairdesk/internal/store"
	"github.com/fixware/repairdesk/pkg/util"
)

type fakeAccountRepo struct {
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	stored := *account
	f.accounts[account.ID] = &stored
	return nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeAdminRepo struct {
	admins map[string]*domain.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*domain.AdminUser)}
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *domain.AdminUser) error {
	stored := *admin
	f.admins[admin.ID] = &stored
	return nil
}

func (f *fakeAdminRepo) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	admin, ok := f.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *admin
	return &copied, nil
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	for _, admin := range f.admins {
		if admin.Email == email {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	admin, ok := f.admins[id]
	if !ok {
		return pgx.ErrNoRows
	}
	admin.PasswordHash = passwordHash
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*domain.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.UserProfile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *domain.UserProfile) error {
	stored := *profile
	f.profiles[profile.UID] = &stored
	return nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, profile *domain.UserProfile) error {
	if _, ok := f.profiles[profile.UID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *profile
	f.profiles[profile.UID] = &stored
	return nil
}

func (f *fakeProfileRepo) Delete(ctx context.Context, uid string) error {
	if _, ok := f.profiles[uid]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.profiles, uid)
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, uid string) (*domain.UserProfile, error) {
	profile, ok := f.profiles[uid]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeProfileRepo) ListAll(ctx context.Context) ([]domain.UserProfile, error) {
	out := make([]domain.UserProfile, 0, len(f.profiles))
	for _, profile := range f.profiles {
		out = append(out, *profile)
	}
	return out, nil
}

type authFixture struct {
	svc      *AuthService
	accounts *fakeAccountRepo
	admins   *fakeAdminRepo
	profiles *fakeProfileRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	accounts := newFakeAccountRepo()
	admins := newFakeAdminRepo()
	profiles := newFakeProfileRepo()

	directory := store.NewUserDirectory(profiles, nil, store.NewMemoryFeed(), nil, zap.NewNop())

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            bcrypt.MinCost,
		},
	}
	svc := NewAuthService(cfg, AuthDependencies{
		AccountRepo: accounts,
		AdminRepo:   admins,
		Directory:   directory,
	})
	return &authFixture{svc: svc, accounts: accounts, admins: admins, profiles: profiles}
}

func (fx *authFixture) seedAdmin(t *testing.T, email, password string, role domain.AdminRole) *domain.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &domain.AdminUser{
		ID:           "admin-1",
		Name:         "Back Office",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, fx.admins.Create(context.Background(), admin))
	return admin
}

func assertAuthErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *util.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code)
}

func TestRegisterCustomer(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	profile, token, expiresAt, err := fx.svc.RegisterCustomer(ctx, "Jordan Blake", "Jordan@Example.com", "hunter2-long")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	// Email is normalized and the profile uid equals the account id.
	assert.Equal(t, "jordan@example.com", profile.Email)
	account, err := fx.accounts.GetByEmail(ctx, "jordan@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, profile.UID)
	_, ok := fx.profiles.profiles[account.ID]
	assert.True(t, ok)

	claims, err := fx.svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectTypeCustomer, claims.Subject)
	assert.Equal(t, account.ID, claims.SubjectID)
}

func TestRegisterCustomerDuplicateEmail(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := fx.svc.RegisterCustomer(ctx, "Jordan", "jordan@example.com", "hunter2-long")
	require.NoError(t, err)

	_, _, _, err = fx.svc.RegisterCustomer(ctx, "Impostor", "JORDAN@example.com", "another-pass")
	assertAuthErrorCode(t, err, "CONFLICT")
}

func TestLoginCustomer(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := fx.svc.RegisterCustomer(ctx, "Jordan", "jordan@example.com", "hunter2-long")
	require.NoError(t, err)

	account, token, _, err := fx.svc.LoginCustomer(ctx, "jordan@example.com", "hunter2-long")
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", account.Email)
	assert.NotEmpty(t, token)

	_, _, _, err = fx.svc.LoginCustomer(ctx, "jordan@example.com", "wrong")
	assertAuthErrorCode(t, err, "UNAUTHORIZED")

	_, _, _, err = fx.svc.LoginCustomer(ctx, "nobody@example.com", "hunter2-long")
	assertAuthErrorCode(t, err, "UNAUTHORIZED")
}

func TestLoginAdmin(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedAdmin(t, "ops@fixware.example", "operator-pass", domain.AdminRoleTechnician)
	ctx := context.Background()

	admin, token, _, err := fx.svc.LoginAdmin(ctx, "ops@fixware.example", "operator-pass")
	require.NoError(t, err)
	assert.Equal(t, domain.AdminRoleTechnician, admin.Role)

	claims, err := fx.svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectTypeAdmin, claims.Subject)
	require.NotNil(t, claims.Role)
	assert.Equal(t, domain.AdminRoleTechnician, *claims.Role)

	_, _, _, err = fx.svc.LoginAdmin(ctx, "ops@fixware.example", "wrong")
	assertAuthErrorCode(t, err, "UNAUTHORIZED")
}

func TestChangeAdminPassword(t *testing.T) {
	fx := newAuthFixture(t)
	admin := fx.seedAdmin(t, "ops@fixware.example", "operator-pass", domain.AdminRoleAdmin)
	ctx := context.Background()

	err := fx.svc.ChangeAdminPassword(ctx, admin.ID, "wrong", "new-password-1")
	assertAuthErrorCode(t, err, "UNAUTHORIZED")

	err = fx.svc.ChangeAdminPassword(ctx, admin.ID, "operator-pass", "short")
	assertAuthErrorCode(t, err, "VALIDATION_FAILED")

	err = fx.svc.ChangeAdminPassword(ctx, "admin-404", "operator-pass", "new-password-1")
	assertAuthErrorCode(t, err, "NOT_FOUND")

	require.NoError(t, fx.svc.ChangeAdminPassword(ctx, admin.ID, "operator-pass", "new-password-1"))

	_, _, _, err = fx.svc.LoginAdmin(ctx, "ops@fixware.example", "operator-pass")
	assertAuthErrorCode(t, err, "UNAUTHORIZED")
	_, _, _, err = fx.svc.LoginAdmin(ctx, "ops@fixware.example", "new-password-1")
	require.NoError(t, err)
}
