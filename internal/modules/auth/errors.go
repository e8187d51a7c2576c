package auth

import (
	"fmt"

	"equiptrack/internal/domain"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	ErrEmailAlreadyExists = fmt.Errorf("%w: email already exists", domain.ErrValidation)
)
