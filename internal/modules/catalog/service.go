package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"equiptrack/internal/authz"
	"equiptrack/internal/domain"
	"equiptrack/internal/inventory"
	"equiptrack/internal/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	repo   *inventory.Repository
	store  EquipmentStore
	notifs Notifier
	log    *zap.Logger
}

func NewService(repo *inventory.Repository, store EquipmentStore, notifs Notifier, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, store: store, notifs: notifs, log: log}
}

/* ---------- QUERIES ---------- */

// List returns the catalog sorted by name, narrowed by f.
func (s *Service) List(f ListFilter) []domain.Equipment {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Equipment, 0)
	for _, eq := range s.repo.Equipment() {
		if f.Category != "" && !strings.EqualFold(eq.Category, f.Category) {
			continue
		}
		if f.Status != "" && string(eq.Status) != f.Status {
			continue
		}
		if search != "" && !matches(eq, search) {
			continue
		}
		out = append(out, eq)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func matches(eq domain.Equipment, search string) bool {
	for _, field := range []string{eq.Name, eq.Description, eq.Category, eq.Location, eq.SerialNumber} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func (s *Service) Get(id string) (domain.Equipment, error) {
	eq, ok := s.repo.EquipmentByID(id)
	if !ok {
		return domain.Equipment{}, fmt.Errorf("%w: equipment %s", domain.ErrNotFound, id)
	}
	return eq, nil
}

/* ---------- COMMANDS ---------- */

func (s *Service) Add(ctx context.Context, actor domain.Actor, req CreateEquipmentRequest) (*Result, error) {
	if err := s.checkManager(actor); err != nil {
		return nil, err
	}

	eq := domain.Equipment{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Category:        req.Category,
		Location:        req.Location,
		Status:          req.Status,
		Quantity:        req.Quantity,
		SerialNumber:    req.SerialNumber,
		PurchaseDate:    req.PurchaseDate,
		LastMaintenance: req.LastMaintenance,
		Image:           req.Image,
	}
	if eq.Status == "" {
		eq.Status = domain.EquipmentAvailable
	}
	if err := validate(eq); err != nil {
		return nil, err
	}

	defer s.repo.Exclusive()()

	result := &Result{Equipment: eq}
	if w := s.repo.Commit(ctx, "create_equipment",
		func(ctx context.Context) error { return s.store.CreateEquipment(ctx, &eq) },
		func() { s.repo.PutEquipment(eq) },
	); w != nil {
		result.Warnings = append(result.Warnings, w)
	}

	s.notify(ctx, eq, false)
	s.log.Info("equipment added", zap.String("equipment_id", eq.ID), zap.String("actor_id", actor.ID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, patch domain.EquipmentPatch) (*Result, error) {
	if err := s.checkManager(actor); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}

	defer s.repo.Exclusive()()

	current, ok := s.repo.EquipmentByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: equipment %s", domain.ErrNotFound, id)
	}
	next := patch.Apply(current)
	next.Name = strings.TrimSpace(next.Name)
	if err := validate(next); err != nil {
		return nil, err
	}

	result := &Result{Equipment: next}
	if w := s.repo.Commit(ctx, "update_equipment",
		func(ctx context.Context) error { return s.store.UpdateEquipment(ctx, id, patch) },
		func() { s.repo.PutEquipment(next) },
	); w != nil {
		result.Warnings = append(result.Warnings, w)
	}

	s.notify(ctx, next, false)
	s.log.Info("equipment updated", zap.String("equipment_id", id), zap.String("actor_id", actor.ID))
	return result, nil
}

// Delete removes the item. Requests that reference it are kept; transitions on
// them fail with not found.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) ([]*domain.PersistenceError, error) {
	if err := s.checkManager(actor); err != nil {
		return nil, err
	}

	defer s.repo.Exclusive()()

	current, ok := s.repo.EquipmentByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: equipment %s", domain.ErrNotFound, id)
	}

	var warnings []*domain.PersistenceError
	if w := s.repo.Commit(ctx, "delete_equipment",
		func(ctx context.Context) error { return s.store.DeleteEquipment(ctx, id) },
		func() { s.repo.RemoveEquipment(id) },
	); w != nil {
		warnings = append(warnings, w)
	}

	s.notify(ctx, current, true)
	s.log.Info("equipment deleted", zap.String("equipment_id", id), zap.String("actor_id", actor.ID))
	return warnings, nil
}

func (s *Service) checkManager(actor domain.Actor) error {
	if !actor.SignedIn() {
		return domain.ErrUnauthorized
	}
	if !authz.CanManageEquipment(actor) {
		return domain.ErrForbidden
	}
	return nil
}

func (s *Service) notify(ctx context.Context, eq domain.Equipment, deleted bool) {
	if s.notifs != nil {
		s.notifs.NotifyEquipmentChanged(ctx, eq, deleted)
	}
}

func validate(eq domain.Equipment) error {
	if errs := validator.Validate(eq); len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, validator.Describe(errs))
	}
	if !eq.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, eq.Status)
	}
	return nil
}
