package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/nexlearn/nexlearn-backend/internal/repository"
)

// UserService handles profile reads/updates and the admin user listing.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// CurrentRole reads the role as stored right now, ignoring whatever a token claims.
func (s *UserService) CurrentRole(ctx context.Context, id uuid.UUID) (model.Role, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// UpdateProfile sets the display name. An empty name keeps the current one.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.GetByID(ctx, id)
	}

	u, err := s.users.UpdateName(ctx, id, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update name: %w", err)
	}
	return u, nil
}

// ListAll returns every user, newest first. Access is gated by
// middleware.RequireAdmin.
func (s *UserService) ListAll(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// SetRoleByEmail changes the stored role of the account with email. Tokens
// already issued keep their old role claim; admin checks read the store.
func (s *UserService) SetRoleByEmail(ctx context.Context, email string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if err := s.users.SetRole(ctx, u.ID, role); err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}
	u.Role = role
	return u, nil
}
