package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"bugwise/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "username", "email", "password_hash", "role", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestUserRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()
	user := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Role: model.RoleViewer, CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("alice", "alice@example.com", "hash", model.RoleViewer, now, now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(7), user.ID)
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{"users_username_key", ErrDuplicateUsername},
		{"users_email_key", ErrDuplicateEmail},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			mock := newMock(t)
			repo := NewUserRepository(mock)

			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			err := repo.Create(context.Background(), &model.User{Username: "alice", Email: "a@example.com", Role: model.RoleViewer})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserRepository_FindByUsername(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(int64(1), "alice", "alice@example.com", "hash", model.RoleAdmin, now, now))

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows(userRowColumns))

	user, err := repo.FindByID(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_FindByEmail_Error(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("a@example.com").
		WillReturnError(errors.New("connection reset"))

	user, err := repo.FindByEmail(context.Background(), "a@example.com")
	assert.Error(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users ORDER BY id OFFSET $1 LIMIT $2`)).
		WithArgs(1, 2).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(int64(2), "bob", "bob@example.com", "h", model.RoleDeveloper, now, now).
			AddRow(int64(3), "carol", "carol@example.com", "h", model.RoleViewer, now, now))

	users, err := repo.List(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, "carol", users[1].Username)
}

func TestUserRepository_Update(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()
	user := &model.User{ID: 3, Username: "carol", Email: "c@example.com", Role: model.RoleViewer, UpdatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs("carol", "c@example.com", model.RoleViewer, now, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.Update(context.Background(), user))
}

func TestUserRepository_Update_DuplicateEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Update(context.Background(), &model.User{ID: 3})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), 3))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), ErrUserNotFound)
}
