package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
)

func newTestAuth(t *testing.T) (*auth.Auth, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "private.pem")
	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))

	a, err := auth.NewAuth(path)
	require.NoError(t, err)

	return a, key
}

func signedToken(t *testing.T, key *rsa.PrivateKey, tokenType string, roles ...string) string {
	t.Helper()

	role := auth.RoleEmployee
	if len(roles) > 0 {
		role = roles[0]
	}

	claims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
		UserId: 7,
		Role:   role,
		Type:   tokenType,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func invokeAuthenticate(t *testing.T, a *auth.Auth, token string, roles ...string) (bool, int) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ginCtx, _ := gin.CreateTestContext(recorder)
	ginCtx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ginCtx.Request.Header.Set("authorization", "Bearer "+token)

	reached := false
	handler := func(c *web.Context) error {
		reached = true
		return c.Respond(map[string]interface{}{"status": true}, http.StatusOK)
	}

	err := Authenticate(a, roles...)(handler)(web.NewContext(ginCtx))
	require.NoError(t, err)

	return reached, recorder.Code
}

func TestAuthenticateAccessToken(t *testing.T) {
	a, key := newTestAuth(t)

	reached, code := invokeAuthenticate(t, a, signedToken(t, key, auth.TypeAccess))
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, code)
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	a, key := newTestAuth(t)

	reached, code := invokeAuthenticate(t, a, signedToken(t, key, auth.TypeRefresh))
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthenticateRejectsRefreshTokenOnRoleGate(t *testing.T) {
	a, key := newTestAuth(t)

	reached, code := invokeAuthenticate(t, a, signedToken(t, key, auth.TypeRefresh, auth.RoleAdmin), auth.RoleAdmin)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthenticateRejectsWrongRole(t *testing.T) {
	a, key := newTestAuth(t)

	reached, code := invokeAuthenticate(t, a, signedToken(t, key, auth.TypeAccess, auth.RoleEmployee), auth.RoleAdmin)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, code)
}
