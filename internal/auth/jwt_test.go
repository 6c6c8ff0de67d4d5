package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartrent_backend/pkg/apperrors"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", 1)

	companyID := uint(5)
	token, err := m.Generate(42, "user@test.com", "Empresa", &companyID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@test.com", claims.Correo)
	assert.Equal(t, "Empresa", claims.Rol)
	require.NotNil(t, claims.CompanyID)
	assert.Equal(t, companyID, *claims.CompanyID)
}

func TestJWTWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", 1)
	verifier := NewJWTManager("secret-b", 1)

	token, err := issuer.Generate(1, "user@test.com", "Usuario", nil)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -1)

	token, err := m.Generate(1, "user@test.com", "Usuario", nil)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestJWTGarbageToken(t *testing.T) {
	m := NewJWTManager("test-secret", 1)

	_, err := m.Verify("not-a-token")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2hunter2"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
