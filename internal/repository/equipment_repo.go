package repository

import (
	"context"
	"time"

	"equiptrack/internal/domain"

	"gorm.io/gorm"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

type equipmentModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	Name            string     `gorm:"column:name;not null"`
	Description     string     `gorm:"column:description;type:text"`
	Category        string     `gorm:"column:category;index"`
	Location        string     `gorm:"column:location"`
	Status          string     `gorm:"column:status;not null"`
	Quantity        int        `gorm:"column:quantity;not null"`
	SerialNumber    *string    `gorm:"column:serial_number"`
	PurchaseDate    *time.Time `gorm:"column:purchase_date"`
	LastMaintenance *time.Time `gorm:"column:last_maintenance"`
	Image           *string    `gorm:"column:image"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (equipmentModel) TableName() string { return "equipment" }

func toDomainEquipment(m equipmentModel) domain.Equipment {
	return domain.Equipment{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		Category:        m.Category,
		Location:        m.Location,
		Status:          domain.EquipmentStatus(m.Status),
		Quantity:        m.Quantity,
		SerialNumber:    deref(m.SerialNumber),
		PurchaseDate:    m.PurchaseDate,
		LastMaintenance: m.LastMaintenance,
		Image:           deref(m.Image),
	}
}

func toEquipmentModel(e *domain.Equipment) equipmentModel {
	return equipmentModel{
		ID:              e.ID,
		Name:            e.Name,
		Description:     e.Description,
		Category:        e.Category,
		Location:        e.Location,
		Status:          string(e.Status),
		Quantity:        e.Quantity,
		SerialNumber:    nullable(e.SerialNumber),
		PurchaseDate:    e.PurchaseDate,
		LastMaintenance: e.LastMaintenance,
		Image:           nullable(e.Image),
	}
}

func (r *EquipmentRepository) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	var rows []equipmentModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Equipment, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainEquipment(m))
	}
	return out, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, e *domain.Equipment) error {
	m := toEquipmentModel(e)
	return translateError(r.db.WithContext(ctx).Create(&m).Error)
}

// UpdateEquipment writes only the fields set in the patch.
func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id string, p domain.EquipmentPatch) error {
	updates := equipmentUpdates(p)
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()

	tx := r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&equipmentModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func equipmentUpdates(p domain.EquipmentPatch) map[string]any {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Location != nil {
		updates["location"] = *p.Location
	}
	if p.Status != nil {
		updates["status"] = string(*p.Status)
	}
	if p.Quantity != nil {
		updates["quantity"] = *p.Quantity
	}
	if p.SerialNumber != nil {
		updates["serial_number"] = nullable(*p.SerialNumber)
	}
	if p.PurchaseDate != nil {
		updates["purchase_date"] = *p.PurchaseDate
	}
	if p.LastMaintenance != nil {
		updates["last_maintenance"] = *p.LastMaintenance
	}
	if p.Image != nil {
		updates["image"] = nullable(*p.Image)
	}
	return updates
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
