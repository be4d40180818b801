package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) (*Auth, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "private.pem")
	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))

	a, err := NewAuth(path)
	require.NoError(t, err)

	return a, key
}

func signedToken(t *testing.T, key *rsa.PrivateKey, claims Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func TestValidateToken(t *testing.T) {
	a, key := newTestAuth(t)

	token := signedToken(t, key, Claims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
		UserId: 12,
		Role:   RoleEmployee,
		Type:   TypeAccess,
	})

	claims, err := a.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 12, claims.UserId)
	assert.Equal(t, RoleEmployee, claims.Role)
}

func TestValidateTokenExpired(t *testing.T) {
	a, key := newTestAuth(t)

	token := signedToken(t, key, Claims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
		UserId: 12,
		Role:   RoleEmployee,
		Type:   TypeAccess,
	})

	_, err := a.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenForeignKey(t *testing.T) {
	a, _ := newTestAuth(t)
	_, otherKey := newTestAuth(t)

	token := signedToken(t, otherKey, Claims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
		UserId: 1,
		Role:   RoleAdmin,
	})

	_, err := a.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthorized(t *testing.T) {
	claims := Claims{Role: RoleAdmin}

	assert.True(t, claims.Authorized(RoleAdmin))
	assert.True(t, claims.Authorized(RoleEmployee, RoleAdmin))
	assert.False(t, claims.Authorized(RoleEmployee))
	assert.False(t, claims.Authorized())
}
