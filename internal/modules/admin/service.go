package admin

import (
	"context"
	"errors"

	"equiptrack/internal/authz"
	"equiptrack/internal/domain"
	"equiptrack/internal/inventory"

	"go.uber.org/zap"
)

type ReloadResult struct {
	Equipment   int    `json:"equipment"`
	Requests    int    `json:"requests"`
	Users       int    `json:"users"`
	FromFixture bool   `json:"from_fixture"`
	Stale       bool   `json:"stale"`
	Warning     string `json:"warning,omitempty"`
}

type Service struct {
	repo *inventory.Repository
	log  *zap.Logger
}

func NewService(repo *inventory.Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// Reload refetches the snapshot from the store. A store failure is reported in
// the result, not as an error, and keeps the snapshot already being served.
func (s *Service) Reload(ctx context.Context, actor domain.Actor) (*ReloadResult, error) {
	if !actor.SignedIn() {
		return nil, domain.ErrUnauthorized
	}
	if !authz.CanManageEquipment(actor) {
		return nil, domain.ErrForbidden
	}

	defer s.repo.Exclusive()()

	result := &ReloadResult{}
	if err := s.repo.Load(ctx); err != nil {
		switch {
		case errors.Is(err, inventory.ErrStaleSnapshot):
			result.Stale = true
		case errors.Is(err, inventory.ErrFixtureFallback):
			result.FromFixture = true
		default:
			return nil, err
		}
		result.Warning = err.Error()
	}

	result.Equipment = len(s.repo.Equipment())
	result.Requests = len(s.repo.Requests())
	result.Users = len(s.repo.Users())

	s.log.Info("inventory reloaded",
		zap.String("actor_id", actor.ID),
		zap.Bool("from_fixture", result.FromFixture),
		zap.Bool("stale", result.Stale),
	)
	return result, nil
}
