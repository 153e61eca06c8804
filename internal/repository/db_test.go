package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

func TestStore_WithinTx_Commit(t *testing.T) {
	mock := newMock(t)
	store := NewStore(mock)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := store.WithinTx(context.Background(), func(users UserRepository) error {
		return users.Delete(context.Background(), 1)
	})
	assert.NoError(t, err)
}

func TestStore_WithinTx_RollbackOnError(t *testing.T) {
	mock := newMock(t)
	store := NewStore(mock)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(users UserRepository) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestStore_WithinTx_RollbackOnPanic(t *testing.T) {
	mock := newMock(t)
	store := NewStore(mock)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = store.WithinTx(context.Background(), func(users UserRepository) error {
			panic("unexpected")
		})
	})
}

func TestStore_WithinTx_BeginFails(t *testing.T) {
	mock := newMock(t)
	store := NewStore(mock)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	called := false
	err := store.WithinTx(context.Background(), func(users UserRepository) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
