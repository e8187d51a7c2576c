// Package inventory holds the authoritative in-memory snapshot of equipment,
// requests and users, synchronised from the data store.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"equiptrack/internal/domain"
	"equiptrack/internal/metrics"

	"go.uber.org/zap"
)

// ErrFixtureFallback is wrapped by Load when the store could not be read and the
// built-in fixture was installed instead.
var ErrFixtureFallback = errors.New("store unavailable, using built-in fixture")

// ErrStaleSnapshot is wrapped by Load when a reload failed and the current
// snapshot, with its local commits, was kept.
var ErrStaleSnapshot = errors.New("store unavailable, keeping current snapshot")

// Source is the read side of the data store.
type Source interface {
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
	ListRequests(ctx context.Context) ([]domain.EquipmentRequest, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type Repository struct {
	source Source
	log    *zap.Logger

	// cmd serialises commands across services; mu guards the slices.
	cmd       sync.Mutex
	mu        sync.RWMutex
	loaded    bool
	equipment []domain.Equipment
	requests  []domain.EquipmentRequest
	users     []domain.User
}

func New(source Source, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{source: source, log: log}
}

// Load replaces the snapshot with the store contents. A store failure on the
// first load installs the fixture and returns an error wrapping
// ErrFixtureFallback. Later failures leave the snapshot untouched and return an
// error wrapping ErrStaleSnapshot.
func (r *Repository) Load(ctx context.Context) error {
	equipment, requests, users, err := r.fetch(ctx)
	if err != nil {
		if r.Loaded() {
			r.log.Warn("inventory reload failed, keeping snapshot", zap.Error(err))
			return fmt.Errorf("%w: %v", ErrStaleSnapshot, err)
		}

		r.log.Warn("inventory load failed, falling back to fixture", zap.Error(err))
		metrics.FixtureFallbacks.Inc()

		f := Fixture()
		r.replace(f.Equipment, f.Requests, f.Users)
		return fmt.Errorf("%w: %v", ErrFixtureFallback, err)
	}

	r.replace(equipment, requests, users)
	r.log.Info("inventory loaded",
		zap.Int("equipment", len(equipment)),
		zap.Int("requests", len(requests)),
		zap.Int("users", len(users)),
	)
	return nil
}

func (r *Repository) fetch(ctx context.Context) ([]domain.Equipment, []domain.EquipmentRequest, []domain.User, error) {
	if r.source == nil {
		return nil, nil, nil, errors.New("no data store configured")
	}
	equipment, err := r.source.ListEquipment(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list equipment: %w", err)
	}
	requests, err := r.source.ListRequests(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list requests: %w", err)
	}
	users, err := r.source.ListUsers(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list users: %w", err)
	}
	return equipment, requests, users, nil
}

func (r *Repository) replace(equipment []domain.Equipment, requests []domain.EquipmentRequest, users []domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.equipment = append([]domain.Equipment(nil), equipment...)
	r.requests = append([]domain.EquipmentRequest(nil), requests...)
	r.users = append([]domain.User(nil), users...)
	r.loaded = true
}

// Loaded reports whether a snapshot, from the store or the fixture, is installed.
func (r *Repository) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Exclusive takes the command lock and returns its release. Every command that
// validates against the snapshot and then mutates it runs under this lock.
func (r *Repository) Exclusive() (release func()) {
	r.cmd.Lock()
	return r.cmd.Unlock
}

// -------------------- queries --------------------

func (r *Repository) Equipment() []domain.Equipment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Equipment(nil), r.equipment...)
}

func (r *Repository) Requests() []domain.EquipmentRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.EquipmentRequest(nil), r.requests...)
}

func (r *Repository) Users() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.User(nil), r.users...)
}

func (r *Repository) EquipmentByID(id string) (domain.Equipment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.equipment {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Equipment{}, false
}

func (r *Repository) RequestByID(id string) (domain.EquipmentRequest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, req := range r.requests {
		if req.ID == id {
			return req, true
		}
	}
	return domain.EquipmentRequest{}, false
}

func (r *Repository) UserByID(id string) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// UserByEmail matches case-insensitively on the trimmed address.
func (r *Repository) UserByEmail(email string) (domain.User, bool) {
	email = domain.NormalizeEmail(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if domain.NormalizeEmail(u.Email) == email {
			return u, true
		}
	}
	return domain.User{}, false
}

func (r *Repository) RequestsForEquipment(equipmentID string) []domain.EquipmentRequest {
	return r.filterRequests(func(req domain.EquipmentRequest) bool { return req.EquipmentID == equipmentID })
}

func (r *Repository) RequestsForUser(userID string) []domain.EquipmentRequest {
	return r.filterRequests(func(req domain.EquipmentRequest) bool { return req.UserID == userID })
}

func (r *Repository) filterRequests(match func(domain.EquipmentRequest) bool) []domain.EquipmentRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.EquipmentRequest, 0)
	for _, req := range r.requests {
		if match(req) {
			out = append(out, req)
		}
	}
	return out
}

// -------------------- mutators (command services only) --------------------

// PutEquipment inserts e or replaces the item with the same id.
func (r *Repository) PutEquipment(e domain.Equipment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.equipment {
		if r.equipment[i].ID == e.ID {
			r.equipment[i] = e
			return
		}
	}
	r.equipment = append(r.equipment, e)
}

func (r *Repository) RemoveEquipment(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.equipment {
		if r.equipment[i].ID == id {
			r.equipment = append(r.equipment[:i], r.equipment[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Repository) PutRequest(req domain.EquipmentRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == req.ID {
			r.requests[i] = req
			return
		}
	}
	r.requests = append(r.requests, req)
}

func (r *Repository) PutUser(u domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == u.ID {
			r.users[i] = u
			return
		}
	}
	r.users = append(r.users, u)
}
