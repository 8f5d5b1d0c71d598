package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixware/repairdesk/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)

	token, expiresAt, err := tm.GenerateToken("u-100", domain.SubjectTypeCustomer, nil)
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-100", claims.SubjectID)
	assert.Equal(t, domain.SubjectTypeCustomer, claims.Subject)
	assert.Nil(t, claims.Role)
}

func TestTokenCarriesAdminRole(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)

	role := domain.AdminRoleTechnician
	token, _, err := tm.GenerateToken("a-1", domain.SubjectTypeAdmin, &role)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectTypeAdmin, claims.Subject)
	require.NotNil(t, claims.Role)
	assert.Equal(t, domain.AdminRoleTechnician, *claims.Role)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)
	other := NewTokenManager("different-secret", 5)

	token, _, err := tm.GenerateToken("u-100", domain.SubjectTypeCustomer, nil)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)
	_, err := tm.ParseToken("not.a.token")
	assert.Error(t, err)
}
