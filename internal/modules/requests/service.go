package requests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"equiptrack/internal/authz"
	"equiptrack/internal/domain"
	"equiptrack/internal/inventory"
	"equiptrack/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service runs request commands against the inventory snapshot. Commands hold
// the repository's exclusive lock so the snapshot has a single writer.
type Service struct {
	repo   *inventory.Repository
	store  RequestStore
	notifs Notifier
	policy StockPolicy
	log    *zap.Logger
	now    func() time.Time
}

func NewService(repo *inventory.Repository, store RequestStore, notifs Notifier, policy StockPolicy, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		store:  store,
		notifs: notifs,
		policy: policy,
		log:    log,
		now:    time.Now,
	}
}

// Submit creates one pending request per item. Equipment is not touched until
// an admin approves.
func (s *Service) Submit(ctx context.Context, actor domain.Actor, in SubmitRequest) (*SubmitResult, error) {
	if !actor.SignedIn() {
		return nil, domain.ErrUnauthorized
	}

	defer s.repo.Exclusive()()

	if err := s.validateSubmit(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	purpose := strings.TrimSpace(in.Purpose)
	result := &SubmitResult{Requests: make([]domain.EquipmentRequest, 0, len(in.Items))}

	for _, item := range in.Items {
		req := domain.EquipmentRequest{
			ID:          uuid.NewString(),
			EquipmentID: item.EquipmentID,
			UserID:      actor.ID,
			UserName:    actor.Name,
			RequestDate: now,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			Status:      domain.RequestPending,
			Purpose:     purpose,
			Quantity:    item.Quantity,
		}

		warning := s.repo.Commit(ctx, "create_request",
			func(ctx context.Context) error { return s.store.CreateRequest(ctx, &req) },
			func() { s.repo.PutRequest(req) },
		)
		if warning != nil {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Requests = append(result.Requests, req)
		metrics.RequestsSubmitted.Inc()

		if s.notifs != nil {
			s.notifs.NotifyRequestSubmitted(ctx, req)
		}
	}

	s.log.Info("requests submitted",
		zap.String("user_id", actor.ID),
		zap.Int("items", len(result.Requests)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

func (s *Service) validateSubmit(in SubmitRequest) error {
	if len(in.Items) == 0 {
		return validationf("at least one item is required")
	}
	if strings.TrimSpace(in.Purpose) == "" {
		return validationf("purpose is required")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return validationf("start and end dates are required")
	}
	if in.EndDate.Before(in.StartDate) {
		return validationf("end date is before start date")
	}

	seen := make(map[string]struct{}, len(in.Items))
	for _, item := range in.Items {
		if item.EquipmentID == "" {
			return validationf("equipment id is required")
		}
		if _, dup := seen[item.EquipmentID]; dup {
			return validationf("equipment %s listed more than once", item.EquipmentID)
		}
		seen[item.EquipmentID] = struct{}{}

		eq, ok := s.repo.EquipmentByID(item.EquipmentID)
		if !ok {
			return fmt.Errorf("%w: equipment %s", domain.ErrNotFound, item.EquipmentID)
		}
		if item.Quantity <= 0 {
			return validationf("quantity for %s must be positive", eq.Name)
		}
		if item.Quantity > eq.Quantity {
			return validationf("requested %d of %s, only %d in stock", item.Quantity, eq.Name, eq.Quantity)
		}
	}
	return nil
}

// Transition moves a request to status to and reconciles the equipment it
// references. Store failures are returned as warnings; the change is kept locally.
func (s *Service) Transition(ctx context.Context, actor domain.Actor, requestID string, to domain.RequestStatus) (*TransitionResult, error) {
	if !actor.SignedIn() {
		return nil, domain.ErrUnauthorized
	}

	defer s.repo.Exclusive()()

	req, ok := s.repo.RequestByID(requestID)
	if !ok {
		return nil, fmt.Errorf("%w: request %s", domain.ErrNotFound, requestID)
	}
	// the state table is only consulted for callers who may see the request
	if !authz.CanViewRequest(actor, req) {
		return nil, domain.ErrForbidden
	}
	from := req.Status

	rule, ok := lookupTransition(from, to)
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	if !authz.CanTransition(actor, req, to) {
		return nil, fmt.Errorf("%w: cannot move request to %s", domain.ErrForbidden, to)
	}

	var next *domain.Equipment
	if rule.touchesEquipment {
		eq, ok := s.repo.EquipmentByID(req.EquipmentID)
		if !ok {
			return nil, fmt.Errorf("%w: equipment %s", domain.ErrNotFound, req.EquipmentID)
		}
		if to == domain.RequestApproved && s.policy == StockGuard && req.Quantity > eq.Quantity {
			return nil, fmt.Errorf("%w: requested %d of %s, only %d in stock", ErrInsufficientStock, req.Quantity, eq.Name, eq.Quantity)
		}
		reconciled := Reconcile(eq, req, to)
		next = &reconciled
	}

	updated := req
	updated.Status = to
	if to == domain.RequestReturned {
		returned := s.now().UTC()
		updated.ReturnDate = &returned
	}

	result := &TransitionResult{Request: updated, Equipment: next}

	warning := s.repo.Commit(ctx, "update_request_status",
		func(ctx context.Context) error {
			return s.store.UpdateRequestStatus(ctx, updated.ID, updated.Status, updated.ReturnDate)
		},
		func() { s.repo.PutRequest(updated) },
	)
	if warning != nil {
		result.Warnings = append(result.Warnings, warning)
	}

	if next != nil {
		eq := *next
		patch := domain.EquipmentPatch{Quantity: &eq.Quantity, Status: &eq.Status}
		warning := s.repo.Commit(ctx, "update_equipment",
			func(ctx context.Context) error { return s.store.UpdateEquipment(ctx, eq.ID, patch) },
			func() { s.repo.PutEquipment(eq) },
		)
		if warning != nil {
			result.Warnings = append(result.Warnings, warning)
		}
	}

	metrics.RequestTransitions.WithLabelValues(string(from), string(to)).Inc()
	if s.notifs != nil {
		s.notifs.NotifyRequestStatusChanged(ctx, updated, from)
	}

	s.log.Info("request status changed",
		zap.String("request_id", updated.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actor_id", actor.ID),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

// Visible returns every request for admins and the actor's own otherwise.
func (s *Service) Visible(actor domain.Actor) ([]domain.EquipmentRequest, error) {
	if !actor.SignedIn() {
		return nil, domain.ErrUnauthorized
	}
	return authz.VisibleRequests(actor, s.repo.Requests()), nil
}

func (s *Service) Get(actor domain.Actor, id string) (domain.EquipmentRequest, error) {
	if !actor.SignedIn() {
		return domain.EquipmentRequest{}, domain.ErrUnauthorized
	}
	req, ok := s.repo.RequestByID(id)
	if !ok {
		return domain.EquipmentRequest{}, fmt.Errorf("%w: request %s", domain.ErrNotFound, id)
	}
	if !authz.CanViewRequest(actor, req) {
		return domain.EquipmentRequest{}, domain.ErrForbidden
	}
	return req, nil
}

// ForEquipment lists the requests against one item, filtered to what the actor may see.
func (s *Service) ForEquipment(actor domain.Actor, equipmentID string) ([]domain.EquipmentRequest, error) {
	if !actor.SignedIn() {
		return nil, domain.ErrUnauthorized
	}
	if _, ok := s.repo.EquipmentByID(equipmentID); !ok {
		return nil, fmt.Errorf("%w: equipment %s", domain.ErrNotFound, equipmentID)
	}
	return authz.VisibleRequests(actor, s.repo.RequestsForEquipment(equipmentID)), nil
}

func (s *Service) ForUser(actor domain.Actor, userID string) ([]domain.EquipmentRequest, error) {
	if !actor.SignedIn() {
		return nil, domain.ErrUnauthorized
	}
	if !authz.CanViewUserRequests(actor, userID) {
		return nil, domain.ErrForbidden
	}
	return s.repo.RequestsForUser(userID), nil
}

// Stats counts equipment over the whole catalog and requests over what the actor can see.
func (s *Service) Stats(actor domain.Actor) (DashboardStats, error) {
	visible, err := s.Visible(actor)
	if err != nil {
		return DashboardStats{}, err
	}

	var stats DashboardStats
	for _, eq := range s.repo.Equipment() {
		stats.TotalEquipment++
		if eq.Status == domain.EquipmentAvailable {
			stats.AvailableEquipment++
		}
	}
	for _, r := range visible {
		switch r.Status {
		case domain.RequestPending:
			stats.PendingRequests++
		case domain.RequestApproved:
			stats.ApprovedRequests++
		}
	}
	return stats, nil
}
