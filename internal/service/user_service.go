package service

import (
	"context"
	"fmt"
	"time"

	"bugwise/internal/model"
	"bugwise/internal/repository"
	"bugwise/internal/utils"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100

	// bcrypt ignores input past 72 bytes and x/crypto rejects it outright.
	maxPasswordBytes = 72
)

// UserService manages user accounts on behalf of an authenticated caller.
type UserService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	List(ctx context.Context, caller *model.User, skip, limit int) ([]model.User, error)
	GetByID(ctx context.Context, caller *model.User, id int64) (*model.User, error)
	Update(ctx context.Context, caller *model.User, id int64, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, caller *model.User, id int64) error
}

type userService struct {
	store repository.Store
	now   func() time.Time
}

// NewUserService creates a new UserService
func NewUserService(store repository.Store) UserService {
	return &userService{store: store, now: time.Now}
}

// Register creates a new account. Username is checked before email.
func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.DefaultRole
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	var created *model.User
	err := s.store.WithinTx(ctx, func(users repository.UserRepository) error {
		existing, err := users.FindByUsername(ctx, req.Username)
		if err != nil {
			return fmt.Errorf("failed to check existing username: %w", err)
		}
		if existing != nil {
			return ErrUsernameTaken
		}

		existing, err = users.FindByEmail(ctx, req.Email)
		if err != nil {
			return fmt.Errorf("failed to check existing email: %w", err)
		}
		if existing != nil {
			return ErrEmailTaken
		}

		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		user := &model.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hashedPassword,
			Role:         role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user in repository: %w", translateRepoErr(err))
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List returns at most limit users starting at skip. Admin only. A zero limit
// yields an empty page and limits above MaxListLimit are clamped.
func (s *userService) List(ctx context.Context, caller *model.User, skip, limit int) ([]model.User, error) {
	if _, err := RequireRole(caller, model.PolicyAdminOnly); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, ErrInvalidPagination
	}
	if skip < 0 {
		skip = 0
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if limit == 0 {
		return []model.User{}, nil
	}

	users, err := s.store.Users().List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID returns a single user. Admin only.
func (s *userService) GetByID(ctx context.Context, caller *model.User, id int64) (*model.User, error) {
	if _, err := RequireRole(caller, model.PolicyAdminOnly); err != nil {
		return nil, err
	}

	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update applies a partial patch to the caller's own account. Admins may not
// edit other accounts through this operation.
func (s *userService) Update(ctx context.Context, caller *model.User, id int64, req model.UpdateUserRequest) (*model.User, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	if req.Role != nil && !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	var updated *model.User
	err := s.store.WithinTx(ctx, func(users repository.UserRepository) error {
		user, err := users.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return ErrUserNotFound
		}
		if caller.ID != id {
			return fmt.Errorf("%w: you may only update your own account", ErrForbidden)
		}

		req.Apply(user)
		user.UpdatedAt = s.now().UTC()
		if err := users.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", translateRepoErr(err))
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an account. Allowed for the account owner or an admin.
func (s *userService) Delete(ctx context.Context, caller *model.User, id int64) error {
	if caller == nil {
		return ErrUnauthorized
	}

	return s.store.WithinTx(ctx, func(users repository.UserRepository) error {
		user, err := users.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return ErrUserNotFound
		}
		if caller.ID != id && !model.PolicyAdminOnly.Allows(caller.Role) {
			return fmt.Errorf("%w: you may only delete your own account", ErrForbidden)
		}

		if err := users.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete user: %w", translateRepoErr(err))
		}
		return nil
	})
}
