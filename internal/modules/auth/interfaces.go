package auth

import (
	"context"

	"equiptrack/internal/domain"
	"equiptrack/internal/pkg/jwt"
)

// UserStore is the part of the data store the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

type tokenService interface {
	GenerateToken(userID, name, role string) (string, error)
	Revoke(claims *jwt.Claims)
}
