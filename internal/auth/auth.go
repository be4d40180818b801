package auth

import (
	"crypto/rsa"
	"net/http"
	"os"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"hrms/backend/foundation/web"
)

// These are the expected values for Claims.Role.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

// ctxKey represents the type of value for the context key.
type ctxKey int

// Key is used to store/retrieve a Claims value from a context.Context.
const Key ctxKey = 1

// Token types issued by the service.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	UserId int    `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"type"`
}

// Authorized returns true if the claims hold one of the provided roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// Auth is used to authenticate clients. It holds the key pair used to parse
// and validate the tokens issued at sign-in.
type Auth struct {
	privateKey *rsa.PrivateKey
	parser     *jwt.Parser
}

// NewAuth creates an Auth from the RSA private key stored in PEM format at
// the given path.
func NewAuth(privateKeyPath string) (*Auth, error) {
	pem, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading private key file")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(pem)
	if err != nil {
		return nil, errors.Wrap(err, "parsing private key")
	}

	return &Auth{
		privateKey: privateKey,
		parser:     &jwt.Parser{ValidMethods: []string{jwt.SigningMethodRS256.Name}},
	}, nil
}

// ValidateToken recreates the Claims that were used to generate a token. It
// verifies the token was signed by us and is not expired.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		return &a.privateKey.PublicKey, nil
	}

	token, err := a.parser.ParseWithClaims(tokenStr, &claims, keyFunc)
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}

	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	return claims, nil
}

// GetClaims retrieves the authenticated principal stored on the context by
// the authenticate middleware.
func GetClaims(c *web.Context) (Claims, error) {
	claims, ok := c.Ctx.Value(Key).(Claims)
	if !ok {
		return Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}
	return claims, nil
}
