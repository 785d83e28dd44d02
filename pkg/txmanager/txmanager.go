// Package txmanager runs functions inside database transactions and carries
// the active transaction through the context, so repositories stay unaware of
// transaction boundaries: they ask GetExecutor for the thing to run queries on.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Executor is the query surface shared by *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type ctxKey struct{}

// serializationFailure is the PostgreSQL SQLSTATE raised when a serializable
// transaction must be retried.
const serializationFailure = "40001"

// ErrTxFailed wraps begin/commit/rollback failures.
var ErrTxFailed = errors.New("txmanager: transaction failed")

// TransactionManager begins transactions on a *sql.DB and re-runs serializable
// ones once when the database reports a serialization failure.
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager creates a manager over the given connection pool.
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// GetExecutor returns the transaction stored in ctx, or fallback when the call
// is not running inside a managed transaction.
func GetExecutor(ctx context.Context, fallback Executor) Executor {
	if tx, ok := ctx.Value(ctxKey{}).(*sql.Tx); ok {
		return tx
	}
	return fallback
}

// IsInTransaction reports whether ctx carries a managed transaction.
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(*sql.Tx)
	return ok
}

// Do runs fn inside a transaction with the default isolation level.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly runs fn inside a read-only transaction.
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable runs fn inside a SERIALIZABLE transaction. On a serialization
// failure the whole function is retried once against fresh state; a second
// failure is returned to the caller, detectable with IsSerializationFailure.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	err := m.run(ctx, opts, fn)
	if err != nil && IsSerializationFailure(err) {
		err = m.run(ctx, opts, fn)
	}
	return err
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTxFailed, err)
	}

	txCtx := context.WithValue(ctx, ctxKey{}, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: commit: %v", ErrTxFailed, err)
	}
	return nil
}

// IsSerializationFailure reports whether err is the SQLSTATE 40001 abort of a
// serializable transaction. Callers treat a persistent one as a conflict.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailure
	}
	// Repositories wrap driver errors with %v, which breaks errors.As; fall
	// back to matching the SQLSTATE text.
	return err != nil && strings.Contains(err.Error(), "could not serialize access")
}
