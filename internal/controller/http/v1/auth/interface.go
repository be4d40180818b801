package auth

import (
	"context"

	"hrms/backend/internal/entity"
)

type Employee interface {
	GetAccountByLogin(ctx context.Context, login string) (entity.User, error)
}
