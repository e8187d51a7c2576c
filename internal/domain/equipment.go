package domain

import "time"

type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "available"
	EquipmentInUse       EquipmentStatus = "in-use"
	EquipmentMaintenance EquipmentStatus = "maintenance"
	EquipmentMissing     EquipmentStatus = "missing"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentAvailable, EquipmentInUse, EquipmentMaintenance, EquipmentMissing:
		return true
	}
	return false
}

// Manual reports whether the status is set by hand only and must survive reconciliation.
func (s EquipmentStatus) Manual() bool {
	return s == EquipmentMaintenance || s == EquipmentMissing
}

// Equipment is a catalog item. Quantity counts the units not currently checked out.
type Equipment struct {
	ID              string          `json:"id"`
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Location        string          `json:"location"`
	Status          EquipmentStatus `json:"status"`
	Quantity        int             `json:"quantity" validate:"gte=0"`
	SerialNumber    string          `json:"serial_number,omitempty"`
	PurchaseDate    *time.Time      `json:"purchase_date,omitempty"`
	LastMaintenance *time.Time      `json:"last_maintenance,omitempty"`
	Image           string          `json:"image,omitempty"`
}

// EquipmentPatch carries a partial update; nil fields are left untouched.
type EquipmentPatch struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Location        *string          `json:"location,omitempty"`
	Status          *EquipmentStatus `json:"status,omitempty"`
	Quantity        *int             `json:"quantity,omitempty"`
	SerialNumber    *string          `json:"serial_number,omitempty"`
	PurchaseDate    *time.Time       `json:"purchase_date,omitempty"`
	LastMaintenance *time.Time       `json:"last_maintenance,omitempty"`
	Image           *string          `json:"image,omitempty"`
}

func (p EquipmentPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil && p.Location == nil &&
		p.Status == nil && p.Quantity == nil && p.SerialNumber == nil && p.PurchaseDate == nil &&
		p.LastMaintenance == nil && p.Image == nil
}

// Apply returns a copy of e with the patch fields written over it.
func (p EquipmentPatch) Apply(e Equipment) Equipment {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Quantity != nil {
		e.Quantity = *p.Quantity
	}
	if p.SerialNumber != nil {
		e.SerialNumber = *p.SerialNumber
	}
	if p.PurchaseDate != nil {
		v := *p.PurchaseDate
		e.PurchaseDate = &v
	}
	if p.LastMaintenance != nil {
		v := *p.LastMaintenance
		e.LastMaintenance = &v
	}
	if p.Image != nil {
		e.Image = *p.Image
	}
	return e
}
