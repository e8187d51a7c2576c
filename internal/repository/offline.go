package repository

import (
	"context"
	"fmt"
	"time"

	"equiptrack/internal/domain"
)

// Offline stands in for the store when the database cannot be opened. Every
// call fails, so reads fall back to the fixture and writes become warnings.
type Offline struct {
	Cause error
}

func (o Offline) err() error {
	if o.Cause == nil {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, o.Cause)
}

func (o Offline) ListEquipment(ctx context.Context) ([]domain.Equipment, error) { return nil, o.err() }

func (o Offline) CreateEquipment(ctx context.Context, e *domain.Equipment) error { return o.err() }

func (o Offline) UpdateEquipment(ctx context.Context, id string, p domain.EquipmentPatch) error {
	return o.err()
}

func (o Offline) DeleteEquipment(ctx context.Context, id string) error { return o.err() }

func (o Offline) ListRequests(ctx context.Context) ([]domain.EquipmentRequest, error) {
	return nil, o.err()
}

func (o Offline) CreateRequest(ctx context.Context, r *domain.EquipmentRequest) error { return o.err() }

func (o Offline) UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus, returnDate *time.Time) error {
	return o.err()
}

func (o Offline) ListUsers(ctx context.Context) ([]domain.User, error) { return nil, o.err() }

func (o Offline) CreateUser(ctx context.Context, u *domain.User) error { return o.err() }

func (o Offline) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, o.err()
}

func (o Offline) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return nil, o.err()
}
