package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/commands"
	"hrms/backend/internal/repository/postgres/employee"
)

const sessionTTL = 7 * 24 * time.Hour

type Controller struct {
	employee       Employee
	redisDB        *redis.Client
	privateKeyPath string
}

func NewController(employee Employee, redisDB *redis.Client, privateKeyPath string) *Controller {
	return &Controller{employee: employee, redisDB: redisDB, privateKeyPath: privateKeyPath}
}

func sessionKey(userID int) string {
	return fmt.Sprintf("session:%d", userID)
}

func (uc Controller) SignIn(c *web.Context) error {
	var data employee.SignInRequest

	err := c.BindFunc(&data, "Login", "Password")
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.employee.GetAccountByLogin(c.Ctx, data.Login)
	if err != nil {
		return c.RespondError(err)
	}

	if detail.Password == nil || detail.Role == nil {
		return c.RespondError(&web.Error{
			Err:    errors.New("account not found"),
			Status: http.StatusNotFound,
		})
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.New(fmt.Sprintf("incorrect password. error: %v", err)), http.StatusBadRequest))
	}

	accessToken, refreshToken, err := commands.GenToken(employee.AuthClaims{
		ID:   detail.ID,
		Role: *detail.Role,
	}, uc.privateKeyPath)
	if err != nil {
		return c.RespondError(err)
	}

	if err = uc.redisDB.Set(c.Ctx, sessionKey(detail.ID), refreshToken, sessionTTL).Err(); err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "storing session"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}

func (uc Controller) RefreshToken(c *web.Context) error {
	var data employee.RefreshTokenRequest

	err := c.BindFunc(&data, "AccessToken", "RefreshToken")
	if err != nil {
		return c.RespondError(err)
	}

	_, refreshTokenClaims, err := commands.VerifyTokens(data.AccessToken, data.RefreshToken, uc.privateKeyPath)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	// A refresh token only works while it is the one stored for the session.
	// Signing in again or signing out invalidates older tokens.
	stored, err := uc.redisDB.Get(c.Ctx, sessionKey(refreshTokenClaims.UserId)).Result()
	if errors.Is(err, redis.Nil) || (err == nil && stored != data.RefreshToken) {
		return c.RespondError(web.NewRequestError(errors.New("session expired, sign in again"), http.StatusUnauthorized))
	}
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "reading session"), http.StatusInternalServerError))
	}

	userClaims := employee.AuthClaims{
		ID:   refreshTokenClaims.UserId,
		Role: refreshTokenClaims.Role,
	}

	accessToken, refreshToken, err := commands.GenToken(userClaims, uc.privateKeyPath)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating new tokens"), http.StatusInternalServerError))
	}

	if err = uc.redisDB.Set(c.Ctx, sessionKey(userClaims.ID), refreshToken, sessionTTL).Err(); err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "storing session"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}
