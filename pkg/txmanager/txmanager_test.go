package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr  error
	committed  int
	rolledBack int
}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	f.committed++
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rolledBack++
	return nil
}

type fakeTxBeginner struct {
	tx     *fakeTx
	begins int
}

func (f *fakeTxBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.begins++
	return f.tx, nil
}

func TestDoSerializable_RetriesSerializationFailureFromFn(t *testing.T) {
	db := &fakeTxBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return &pq.Error{Code: "40001"}
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.Equal(t, serializableRetries, calls)
}

func TestDoSerializable_RetriesSerializationFailureFromCommit(t *testing.T) {
	// Под SERIALIZABLE конфликт обнаруживается и на COMMIT - такая ошибка
	// тоже должна классифицироваться как конфликт сериализации и повторяться
	db := &fakeTxBeginner{tx: &fakeTx{commitErr: &pq.Error{Code: "40001"}}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.Equal(t, serializableRetries, db.begins)
	assert.Equal(t, serializableRetries, db.tx.committed)
}

func TestDoSerializable_DeadlockFromCommitRetried(t *testing.T) {
	db := &fakeTxBeginner{tx: &fakeTx{commitErr: &pq.Error{Code: "40P01"}}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.Equal(t, serializableRetries, db.begins)
}

func TestDoSerializable_BusinessErrorNotRetried(t *testing.T) {
	db := &fakeTxBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	sentinel := errors.New("business rule violated")
	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, err, ErrSerialization)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, db.tx.rolledBack)
}

func TestDoSerializable_PlainCommitErrorNotRetried(t *testing.T) {
	db := &fakeTxBeginner{tx: &fakeTx{commitErr: errors.New("connection reset")}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommitTx)
	assert.NotErrorIs(t, err, ErrSerialization)
	assert.Equal(t, 1, db.begins)
}

func TestDoSerializable_SucceedsAfterRetry(t *testing.T) {
	db := &fakeTxBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestIsSerializationError(t *testing.T) {
	assert.True(t, IsSerializationError(&pq.Error{Code: "40001"}))
	assert.True(t, IsSerializationError(&pq.Error{Code: "40P01"}))
	assert.False(t, IsSerializationError(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationError(errors.New("plain")))

	// Ошибка коммита сохраняет SQLSTATE сквозь обертку
	wrapped := fmt.Errorf("%w: %w", ErrCommitTx, &pq.Error{Code: "40001"})
	assert.True(t, IsSerializationError(wrapped))
}
