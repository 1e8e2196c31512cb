package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-management-api/internal/core/domain"
	"github.com/taskhub/task-management-api/internal/core/ports"
)

// UserService implements admin user management and the self-profile lookup.
type UserService struct {
	repo   ports.UserRepository
	authz  Authorizer
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, authz Authorizer, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, authz: authz, logger: logger}
}

func (s *UserService) List(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	if err := s.authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, p domain.Principal, id string) (*domain.User, error) {
	if err := s.authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Update applies a field-level patch to a user. The isActive flag is stored
// and settable here but gates nothing elsewhere; it is reserved.
func (s *UserService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if err := s.authz.RequireAdmin(p); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := s.authz.RequireAdmin(p); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// Profile returns the caller's own record; no role requirement.
func (s *UserService) Profile(ctx context.Context, p domain.Principal) (*domain.User, error) {
	return s.repo.FindByID(ctx, p.ID)
}
