package domain

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
	RequestReturned RequestStatus = "returned"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected, RequestReturned:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s RequestStatus) Terminal() bool {
	return s == RequestRejected || s == RequestReturned
}

// EquipmentRequest is a checkout reservation for one equipment item.
// UserName is a snapshot of the requester at submission time.
type EquipmentRequest struct {
	ID          string        `json:"id"`
	EquipmentID string        `json:"equipment_id"`
	UserID      string        `json:"user_id"`
	UserName    string        `json:"user_name"`
	RequestDate time.Time     `json:"request_date"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	ReturnDate  *time.Time    `json:"return_date,omitempty"`
	Status      RequestStatus `json:"status"`
	Purpose     string        `json:"purpose"`
	Quantity    int           `json:"quantity"`
}
