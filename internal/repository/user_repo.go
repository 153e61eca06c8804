package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bugwise/internal/model"

	"github.com/jackc/pgx/v5"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already registered")
	ErrDuplicateEmail    = errors.New("email already registered")
)

const userColumns = `id, username, email, password_hash, role, created_at, updated_at`

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, skip, limit int) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (username, email, password_hash, role, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRow(ctx, sql, user.Username, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
	if err != nil {
		if dupErr := duplicateError(err); dupErr != nil {
			return dupErr
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by their ID. A missing row yields (nil, nil).
func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByUsername retrieves a user by username. A missing row yields (nil, nil).
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, username))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// FindByEmail retrieves a user by email. A missing row yields (nil, nil).
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// List returns up to limit users starting at offset skip, in insertion order.
func (r *userRepository) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, sql, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, limit)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// Update persists username, email, role and updated_at of an existing user.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	sql := `UPDATE users
            SET username = $1, email = $2, role = $3, updated_at = $4
            WHERE id = $5`
	cmdTag, err := r.db.Exec(ctx, sql, user.Username, user.Email, user.Role, user.UpdatedAt, user.ID)
	if err != nil {
		if dupErr := duplicateError(err); dupErr != nil {
			return dupErr
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user row.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM users WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// duplicateError maps a unique violation on users to the matching sentinel.
func duplicateError(err error) error {
	pgErr, ok := isUniqueViolation(err)
	if !ok {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return ErrDuplicateEmail
	case strings.Contains(pgErr.ConstraintName, "username"):
		return ErrDuplicateUsername
	}
	return fmt.Errorf("%w: %s", ErrDuplicateUsername, pgErr.ConstraintName)
}
