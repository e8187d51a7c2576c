package catalog

import (
	"context"

	"equiptrack/internal/domain"
)

type EquipmentStore interface {
	CreateEquipment(ctx context.Context, e *domain.Equipment) error
	UpdateEquipment(ctx context.Context, id string, p domain.EquipmentPatch) error
	DeleteEquipment(ctx context.Context, id string) error
}

type Notifier interface {
	NotifyEquipmentChanged(ctx context.Context, eq domain.Equipment, deleted bool)
}
