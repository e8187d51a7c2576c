package requests

import (
	"time"

	"equiptrack/internal/domain"
)

type SubmitItem struct {
	EquipmentID string `json:"equipment_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
}

// SubmitRequest is one form submission; each item becomes its own request record.
type SubmitRequest struct {
	Items     []SubmitItem `json:"items" binding:"required,min=1,dive"`
	Purpose   string       `json:"purpose" binding:"required"`
	StartDate time.Time    `json:"start_date" binding:"required"`
	EndDate   time.Time    `json:"end_date" binding:"required"`
}

type UpdateStatusRequest struct {
	Status domain.RequestStatus `json:"status" binding:"required"`
}

type SubmitResult struct {
	Requests []domain.EquipmentRequest
	Warnings []*domain.PersistenceError
}

type TransitionResult struct {
	Request   domain.EquipmentRequest
	Equipment *domain.Equipment
	Warnings  []*domain.PersistenceError
}

type DashboardStats struct {
	TotalEquipment     int `json:"total_equipment"`
	AvailableEquipment int `json:"available_equipment"`
	PendingRequests    int `json:"pending_requests"`
	ApprovedRequests   int `json:"approved_requests"`
}
