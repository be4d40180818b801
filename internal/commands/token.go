package commands

import (
	"crypto/rsa"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"hrms/backend/internal/auth"
	"hrms/backend/internal/repository/postgres/employee"
)

const (
	accessTokenTTL  = 2 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func loadPrivateKey(privateKeyPath string) (*rsa.PrivateKey, error) {
	keyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading private key")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return nil, errors.Wrap(err, "parsing private key")
	}

	return privateKey, nil
}

// GenToken issues a signed access/refresh token pair for an account.
func GenToken(claims employee.AuthClaims, privateKeyPath string) (string, string, error) {
	privateKey, err := loadPrivateKey(privateKeyPath)
	if err != nil {
		return "", "", err
	}

	now := time.Now()

	accessClaims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(accessTokenTTL).Unix(),
		},
		UserId: claims.ID,
		Role:   claims.Role,
		Type:   auth.TypeAccess,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, accessClaims).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refreshClaims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(refreshTokenTTL).Unix(),
		},
		UserId: claims.ID,
		Role:   claims.Role,
		Type:   auth.TypeRefresh,
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, refreshClaims).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

// VerifyTokens checks a token pair during refresh. The refresh token must be
// live and of the refresh type; the access token only has to parse and belong
// to the same account, an expired one is the normal case here.
func VerifyTokens(accessToken, refreshToken, privateKeyPath string) (*auth.Claims, *auth.Claims, error) {
	privateKey, err := loadPrivateKey(privateKeyPath)
	if err != nil {
		return nil, nil, err
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return &privateKey.PublicKey, nil
	}

	var refreshClaims auth.Claims
	if _, err := jwt.ParseWithClaims(refreshToken, &refreshClaims, keyFunc); err != nil {
		return nil, nil, errors.Wrap(err, "parsing refresh token")
	}
	if refreshClaims.Type != auth.TypeRefresh {
		return nil, nil, errors.New("token is not a refresh token")
	}

	var accessClaims auth.Claims
	if _, err := jwt.ParseWithClaims(accessToken, &accessClaims, keyFunc); err != nil {
		validationErr, ok := err.(*jwt.ValidationError)
		if !ok || validationErr.Errors&jwt.ValidationErrorExpired == 0 {
			return nil, nil, errors.Wrap(err, "parsing access token")
		}
	}
	if accessClaims.UserId != refreshClaims.UserId {
		return nil, nil, errors.New("token pair mismatch")
	}

	return &accessClaims, &refreshClaims, nil
}
