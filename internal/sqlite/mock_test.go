package sqlite

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/estate/internal/codec"
	"github.com/mesh-intelligence/estate/pkg/types"
)

var errBoom = errors.New("disk on fire")

func mockBackend(t *testing.T) (*Backend, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	b := NewBackend()
	b.attachDB(db, types.Config{Backend: types.BackendSQLite}, "mock")
	return b, mock
}

func TestDriverErrorsPropagate(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		b, mock := mockBackend(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT record FROM properties WHERE id = ?")).
			WithArgs(int64(7)).
			WillReturnError(errBoom)

		tbl, err := b.Properties()
		require.NoError(t, err)
		_, _, err = tbl.Get(7)
		assert.ErrorIs(t, err, errBoom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert", func(t *testing.T) {
		b, mock := mockBackend(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO lease_agreements (id, record)")).
			WillReturnError(errBoom)

		tbl, err := b.LeaseAgreements()
		require.NoError(t, err)
		err = tbl.Insert(1, types.LeaseAgreement{ID: 1, Tenant: "t", StartDate: 1, EndDate: 2})
		assert.ErrorIs(t, err, errBoom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("remove rolls back on delete failure", func(t *testing.T) {
		b, mock := mockBackend(t)
		blob, err := codec.Encode(types.MaintenanceRequest{ID: 4, Status: "pending"})
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT record FROM maintenance_requests WHERE id = ?")).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"record"}).AddRow(blob))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM maintenance_requests WHERE id = ?")).
			WithArgs(int64(4)).
			WillReturnError(errBoom)
		mock.ExpectRollback()

		tbl, err := b.MaintenanceRequests()
		require.NoError(t, err)
		_, ok, err := tbl.Remove(4)
		assert.False(t, ok)
		assert.ErrorIs(t, err, errBoom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("iterate", func(t *testing.T) {
		b, mock := mockBackend(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, record FROM properties ORDER BY id")).
			WillReturnError(errBoom)

		tbl, err := b.Properties()
		require.NoError(t, err)
		_, err = tbl.Iterate()
		assert.ErrorIs(t, err, errBoom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counter write", func(t *testing.T) {
		b, mock := mockBackend(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO counters (name, value)")).
			WithArgs(types.NextIDCounter, int64(5)).
			WillReturnError(errBoom)

		c, err := b.Counter()
		require.NoError(t, err)
		assert.ErrorIs(t, c.Set(5), errBoom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
