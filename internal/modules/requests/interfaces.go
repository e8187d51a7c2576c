package requests

import (
	"context"
	"time"

	"equiptrack/internal/domain"
)

// RequestStore is the write side of the data store the engine needs.
type RequestStore interface {
	CreateRequest(ctx context.Context, r *domain.EquipmentRequest) error
	UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus, returnDate *time.Time) error
	UpdateEquipment(ctx context.Context, id string, p domain.EquipmentPatch) error
}

type Notifier interface {
	NotifyRequestSubmitted(ctx context.Context, req domain.EquipmentRequest)
	NotifyRequestStatusChanged(ctx context.Context, req domain.EquipmentRequest, from domain.RequestStatus)
}
