package repository

import (
	"context"
	"time"

	"equiptrack/internal/domain"

	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

type requestModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EquipmentID string     `gorm:"column:equipment_id;index;not null"`
	UserID      string     `gorm:"column:user_id;index;not null"`
	UserName    string     `gorm:"column:user_name"`
	RequestDate time.Time  `gorm:"column:request_date;not null"`
	StartDate   time.Time  `gorm:"column:start_date;not null"`
	EndDate     time.Time  `gorm:"column:end_date;not null"`
	ReturnDate  *time.Time `gorm:"column:return_date"`
	Status      string     `gorm:"column:status;index;not null"`
	Purpose     string     `gorm:"column:purpose;type:text;not null"`
	Quantity    int        `gorm:"column:quantity;not null"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (requestModel) TableName() string { return "equipment_requests" }

func toDomainRequest(m requestModel) domain.EquipmentRequest {
	return domain.EquipmentRequest{
		ID:          m.ID,
		EquipmentID: m.EquipmentID,
		UserID:      m.UserID,
		UserName:    m.UserName,
		RequestDate: m.RequestDate,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		ReturnDate:  m.ReturnDate,
		Status:      domain.RequestStatus(m.Status),
		Purpose:     m.Purpose,
		Quantity:    m.Quantity,
	}
}

func toRequestModel(r *domain.EquipmentRequest) requestModel {
	return requestModel{
		ID:          r.ID,
		EquipmentID: r.EquipmentID,
		UserID:      r.UserID,
		UserName:    r.UserName,
		RequestDate: r.RequestDate,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		ReturnDate:  r.ReturnDate,
		Status:      string(r.Status),
		Purpose:     r.Purpose,
		Quantity:    r.Quantity,
	}
}

func (r *RequestRepository) ListRequests(ctx context.Context) ([]domain.EquipmentRequest, error) {
	var rows []requestModel
	if err := r.db.WithContext(ctx).Order("request_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.EquipmentRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainRequest(m))
	}
	return out, nil
}

func (r *RequestRepository) CreateRequest(ctx context.Context, req *domain.EquipmentRequest) error {
	m := toRequestModel(req)
	return translateError(r.db.WithContext(ctx).Create(&m).Error)
}

// UpdateRequestStatus sets the status and, when given, the return date.
func (r *RequestRepository) UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus, returnDate *time.Time) error {
	updates := map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	if returnDate != nil {
		updates["return_date"] = *returnDate
	}

	tx := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
