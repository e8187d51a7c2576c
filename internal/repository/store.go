package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"equiptrack/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")

	// ErrUnavailable is returned by Offline for every call.
	ErrUnavailable = errors.New("data store unavailable")
)

// DataStore is the full adapter surface. *Store and Offline implement it.
type DataStore interface {
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
	CreateEquipment(ctx context.Context, e *domain.Equipment) error
	UpdateEquipment(ctx context.Context, id string, p domain.EquipmentPatch) error
	DeleteEquipment(ctx context.Context, id string) error

	ListRequests(ctx context.Context) ([]domain.EquipmentRequest, error)
	CreateRequest(ctx context.Context, r *domain.EquipmentRequest) error
	UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus, returnDate *time.Time) error

	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// Store is the record-oriented data store adapter used by the inventory services.
type Store struct {
	*EquipmentRepository
	*RequestRepository
	*UserRepository
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		EquipmentRepository: NewEquipmentRepository(db),
		RequestRepository:   NewRequestRepository(db),
		UserRepository:      NewUserRepository(db),
		db:                  db,
	}
}

func (s *Store) DB() *gorm.DB { return s.db }

// Migrate creates or updates the tables backing the store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&equipmentModel{}, &requestModel{}, &userModel{})
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	// modernc reports constraint violations as plain sqlite errors.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}
