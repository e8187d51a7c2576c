package repository

import (
	"context"
	"time"

	"equiptrack/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;not null"`
	Name         string    `gorm:"column:name"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         domain.UserRole(m.Role),
		PasswordHash: m.PasswordHash,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Email:        domain.NormalizeEmail(u.Email),
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Name:         u.Name,
	}
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainUser(m))
	}
	return out, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	return translateError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", domain.NormalizeEmail(email)).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	u := toDomainUser(m)
	return &u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	u := toDomainUser(m)
	return &u, nil
}
