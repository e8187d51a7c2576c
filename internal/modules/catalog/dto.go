package catalog

import (
	"time"

	"equiptrack/internal/domain"
)

// ---------- EQUIPMENT CREATE ----------

type CreateEquipmentRequest struct {
	Name            string                 `json:"name" binding:"required"`
	Description     string                 `json:"description"`
	Category        string                 `json:"category"`
	Location        string                 `json:"location"`
	Status          domain.EquipmentStatus `json:"status"`
	Quantity        int                    `json:"quantity" binding:"gte=0"`
	SerialNumber    string                 `json:"serial_number"`
	PurchaseDate    *time.Time             `json:"purchase_date"`
	LastMaintenance *time.Time             `json:"last_maintenance"`
	Image           string                 `json:"image"`
}

// ---------- LIST FILTERS ----------

type ListFilter struct {
	Category string `form:"category"`
	Status   string `form:"status"`
	Search   string `form:"q"`
}

type Result struct {
	Equipment domain.Equipment
	Warnings  []*domain.PersistenceError
}
