package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/backend/internal/auth"
	"hrms/backend/internal/repository/postgres/employee"
)

func writeTestKey(t *testing.T) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "private.pem")
	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))

	return path
}

func TestGenTokenRoundTrip(t *testing.T) {
	keyPath := writeTestKey(t)

	accessToken, refreshToken, err := GenToken(employee.AuthClaims{ID: 7, Role: auth.RoleAdmin}, keyPath)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	accessClaims, refreshClaims, err := VerifyTokens(accessToken, refreshToken, keyPath)
	require.NoError(t, err)

	assert.Equal(t, 7, accessClaims.UserId)
	assert.Equal(t, auth.RoleAdmin, accessClaims.Role)
	assert.Equal(t, auth.TypeAccess, accessClaims.Type)
	assert.Equal(t, auth.TypeRefresh, refreshClaims.Type)
}

func TestVerifyTokensRejectsAccessAsRefresh(t *testing.T) {
	keyPath := writeTestKey(t)

	accessToken, _, err := GenToken(employee.AuthClaims{ID: 1, Role: auth.RoleEmployee}, keyPath)
	require.NoError(t, err)

	_, _, err = VerifyTokens(accessToken, accessToken, keyPath)
	assert.Error(t, err)
}

func TestVerifyTokensRejectsPairMismatch(t *testing.T) {
	keyPath := writeTestKey(t)

	accessToken, _, err := GenToken(employee.AuthClaims{ID: 1, Role: auth.RoleEmployee}, keyPath)
	require.NoError(t, err)

	_, otherRefresh, err := GenToken(employee.AuthClaims{ID: 2, Role: auth.RoleEmployee}, keyPath)
	require.NoError(t, err)

	_, _, err = VerifyTokens(accessToken, otherRefresh, keyPath)
	assert.Error(t, err)
}

func TestVerifyTokensRejectsForeignKey(t *testing.T) {
	keyPath := writeTestKey(t)
	otherKeyPath := writeTestKey(t)

	_, refreshToken, err := GenToken(employee.AuthClaims{ID: 1, Role: auth.RoleEmployee}, keyPath)
	require.NoError(t, err)

	accessToken, _, err := GenToken(employee.AuthClaims{ID: 1, Role: auth.RoleEmployee}, keyPath)
	require.NoError(t, err)

	_, _, err = VerifyTokens(accessToken, refreshToken, otherKeyPath)
	assert.Error(t, err)
}
