package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"equiptrack/internal/authz"
	"equiptrack/internal/domain"
	"equiptrack/internal/inventory"
	"equiptrack/internal/pkg/jwt"
	"equiptrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service contains the identity logic: accounts, sign-in and sessions.
type Service struct {
	repo  *inventory.Repository
	users UserStore
	jwt   tokenService
	log   *zap.Logger
	cost  int
}

func NewService(repo *inventory.Repository, users UserStore, jwt tokenService, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, users: users, jwt: jwt, log: log, cost: bcrypt.DefaultCost}
}

// SignUp creates a regular user and signs them in.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	user, warnings, err := s.createUser(ctx, req.Name, req.Email, req.Password, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	session.Warnings = warnings
	return session, nil
}

func (s *Service) SignIn(ctx context.Context, req SignInRequest) (*Session, error) {
	user, ok := s.lookupByEmail(ctx, req.Email)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.log.Info("user signed in", zap.String("user_id", user.ID))
	return s.issue(user)
}

// SignOut revokes the token the claims were read from.
func (s *Service) SignOut(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil {
		return domain.ErrUnauthorized
	}
	s.jwt.Revoke(claims)
	s.log.Info("user signed out", zap.String("user_id", claims.UserID))
	return nil
}

// CurrentSession resolves the signed-in actor to the stored user.
func (s *Service) CurrentSession(ctx context.Context, actor domain.Actor) (domain.User, error) {
	if !actor.SignedIn() {
		return domain.User{}, domain.ErrUnauthorized
	}
	if u, ok := s.repo.UserByID(actor.ID); ok {
		return u, nil
	}
	u, err := s.users.GetUserByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, domain.ErrUnauthorized
		}
		return domain.User{}, err
	}
	return *u, nil
}

// AddUser lets an admin create an account with any role.
func (s *Service) AddUser(ctx context.Context, actor domain.Actor, req AddUserRequest) (domain.User, []*domain.PersistenceError, error) {
	if !actor.SignedIn() {
		return domain.User{}, nil, domain.ErrUnauthorized
	}
	if !authz.CanManageUsers(actor) {
		return domain.User{}, nil, domain.ErrForbidden
	}
	if !req.Role.Valid() {
		return domain.User{}, nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, req.Role)
	}
	return s.createUser(ctx, req.Name, req.Email, req.Password, req.Role)
}

func (s *Service) ListUsers(actor domain.Actor) ([]domain.User, error) {
	if !actor.SignedIn() {
		return nil, domain.ErrUnauthorized
	}
	if !authz.CanManageUsers(actor) {
		return nil, domain.ErrForbidden
	}
	return s.repo.Users(), nil
}

func (s *Service) createUser(ctx context.Context, name, email, password string, role domain.UserRole) (domain.User, []*domain.PersistenceError, error) {
	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)
	if name == "" || email == "" {
		return domain.User{}, nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}
	if len(password) < 8 {
		return domain.User{}, nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	defer s.repo.Exclusive()()

	if err := s.validateEmailUnique(ctx, email); err != nil {
		return domain.User{}, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.User{}, nil, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
	}

	var warnings []*domain.PersistenceError
	if w := s.repo.Commit(ctx, "create_user",
		func(ctx context.Context) error { return s.users.CreateUser(ctx, &user) },
		func() { s.repo.PutUser(user) },
	); w != nil {
		warnings = append(warnings, w)
	}

	s.log.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return user, warnings, nil
}

// validateEmailUnique checks the snapshot and then the store. A store that
// cannot answer does not block sign-up.
func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	if _, ok := s.repo.UserByEmail(email); ok {
		return ErrEmailAlreadyExists
	}
	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailAlreadyExists
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		s.log.Warn("email uniqueness check skipped store", zap.Error(err))
		return nil
	}
}

// lookupByEmail prefers the store and falls back to the snapshot, which holds
// accounts created while the store was unreachable.
func (s *Service) lookupByEmail(ctx context.Context, email string) (domain.User, bool) {
	email = domain.NormalizeEmail(email)
	u, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return *u, true
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("sign-in store lookup failed, using snapshot", zap.Error(err))
	}
	return s.repo.UserByEmail(email)
}

func (s *Service) issue(user domain.User) (*Session, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Name, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}
