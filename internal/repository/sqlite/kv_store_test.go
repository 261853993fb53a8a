package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/railtools/internal/repository/kv"
)

func newMockStore(t *testing.T) (*KVStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewKVStore(db), mock
}

func TestKVStore_GetMissingKey(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = ?`)).
		WithArgs("@calculation_history").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), "@calculation_history")

	assert.ErrorIs(t, err, kv.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_GetReturnsValue(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = ?`)).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[1]`)))

	got, err := store.Get(context.Background(), "k")

	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_SetUpserts(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_store (key, value) VALUES (?, ?)`)).
		WithArgs("k", []byte(`"v"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Set(context.Background(), "k", []byte(`"v"`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_DeleteWrapsFailure(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_store WHERE key = ?`)).
		WithArgs("k").
		WillReturnError(errors.New("locked"))

	err := store.Delete(context.Background(), "k")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_FileDatabase(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, filepath.Join(t.TempDir(), "railtools.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "k", []byte("one")))
	require.NoError(t, store.Set(ctx, "k", []byte("two")))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}
