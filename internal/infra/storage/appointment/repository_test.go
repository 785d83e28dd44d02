package appointment

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendamed/scheduling-service/internal/domain"
	"github.com/agendamed/scheduling-service/pkg/ptr"
	"github.com/agendamed/scheduling-service/pkg/txmanager"
)

// sqlRecorder captures the statements a test run sends to the database and
// controls how many rows each UPDATE reports as affected.
type sqlRecorder struct {
	mu       sync.Mutex
	queries  []string
	affected int64
}

func (r *sqlRecorder) record(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, query)
}

func (r *sqlRecorder) last(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.queries)
	return r.queries[len(r.queries)-1]
}

type recordingDriver struct {
	mu        sync.Mutex
	recorders map[string]*sqlRecorder
}

var testDriver = &recordingDriver{recorders: map[string]*sqlRecorder{}}

func init() {
	sql.Register("appointment-recording", testDriver)
}

func (d *recordingDriver) Open(name string) (driver.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.recorders[name]
	if !ok {
		return nil, errors.New("unknown recorder " + name)
	}
	return &recordingConn{rec: rec}, nil
}

type recordingConn struct {
	rec *sqlRecorder
}

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare is not supported")
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) { return recordingTx{}, nil }

func (c *recordingConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return recordingTx{}, nil
}

func (c *recordingConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.rec.record(query)
	return emptyRows{}, nil
}

func (c *recordingConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.rec.record(query)
	return driver.RowsAffected(c.rec.affected), nil
}

type recordingTx struct{}

func (recordingTx) Commit() error   { return nil }
func (recordingTx) Rollback() error { return nil }

type emptyRows struct{}

func (emptyRows) Columns() []string              { return []string{} }
func (emptyRows) Close() error                   { return nil }
func (emptyRows) Next(dest []driver.Value) error { return io.EOF }

func newRecordedDB(t *testing.T, affected int64) (*sql.DB, *sqlRecorder) {
	t.Helper()

	rec := &sqlRecorder{affected: affected}
	testDriver.mu.Lock()
	testDriver.recorders[t.Name()] = rec
	testDriver.mu.Unlock()

	db, err := sql.Open("appointment-recording", t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, rec
}

func TestList_LockForBookingInsideTransaction(t *testing.T) {
	db, rec := newRecordedDB(t, 1)
	repo := NewRepository(db)
	tm := txmanager.NewTransactionManager(db)

	err := tm.DoSerializable(context.Background(), func(txCtx context.Context) error {
		_, err := repo.List(txCtx, domain.AppointmentsFilter{
			DoctorID:       ptr.Ptr(int64(7)),
			OnlyActive:     true,
			LockForBooking: true,
		})
		return err
	})
	require.NoError(t, err)

	query := rec.last(t)
	assert.Contains(t, query, "ORDER BY starts_at ASC, id ASC FOR UPDATE")
}

func TestList_ReadOnlyListingDoesNotLock(t *testing.T) {
	db, rec := newRecordedDB(t, 1)
	repo := NewRepository(db)
	tm := txmanager.NewTransactionManager(db)

	err := tm.DoReadOnly(context.Background(), func(txCtx context.Context) error {
		_, err := repo.List(txCtx, domain.AppointmentsFilter{
			DoctorID:   ptr.Ptr(int64(7)),
			OnlyActive: true,
		})
		return err
	})
	require.NoError(t, err)

	query := rec.last(t)
	assert.NotContains(t, query, "FOR UPDATE")
}

func TestList_LockRequestOutsideTransactionIgnored(t *testing.T) {
	db, rec := newRecordedDB(t, 1)
	repo := NewRepository(db)

	_, err := repo.List(context.Background(), domain.AppointmentsFilter{
		DoctorID:       ptr.Ptr(int64(7)),
		LockForBooking: true,
	})
	require.NoError(t, err)

	query := rec.last(t)
	assert.NotContains(t, query, "FOR UPDATE")
}

func TestConfirm_UpdateGuardedByStatus(t *testing.T) {
	db, rec := newRecordedDB(t, 1)
	repo := NewRepository(db)

	err := repo.Confirm(context.Background(), 42)
	require.NoError(t, err)

	query := rec.last(t)
	assert.Contains(t, query, "WHERE id = $2 AND status IN ($3,$4)")
}

func TestConfirm_ZeroRowsMeansTransitionRefused(t *testing.T) {
	db, _ := newRecordedDB(t, 0)
	repo := NewRepository(db)

	err := repo.Confirm(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestCancel_UpdateSkipsCancelledRows(t *testing.T) {
	db, rec := newRecordedDB(t, 1)
	repo := NewRepository(db)

	err := repo.Cancel(context.Background(), 42, "paciente desistiu")
	require.NoError(t, err)

	query := rec.last(t)
	assert.Contains(t, query, "AND status <> $4")
}

func TestCancel_ZeroRowsMeansTransitionRefused(t *testing.T) {
	db, _ := newRecordedDB(t, 0)
	repo := NewRepository(db)

	err := repo.Cancel(context.Background(), 42, "paciente desistiu")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateNotes_ZeroRowsMeansNotFound(t *testing.T) {
	db, _ := newRecordedDB(t, 0)
	repo := NewRepository(db)

	err := repo.UpdateNotes(context.Background(), 42, ptr.Ptr("observações"))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
