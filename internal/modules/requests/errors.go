package requests

import (
	"fmt"

	"equiptrack/internal/domain"
)

// ErrInsufficientStock rejects an approval that would drive stock negative.
var ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", domain.ErrValidation)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}
