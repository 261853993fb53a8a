package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk gone") }
func (failingStore) Set(context.Context, string, []byte) error   { return errors.New("disk gone") }
func (failingStore) Delete(context.Context, string) error        { return errors.New("disk gone") }

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, SaveJSON(ctx, store, "k", []string{"a", "b"}))

	var got []string
	found, err := LoadJSON(ctx, store, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, Remove(ctx, store, "k"))
	found, err = LoadJSON(ctx, store, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoadJSON_CorruptValue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "k", []byte("{not json")))

	var got []string
	_, err := LoadJSON(ctx, store, "k", &got)

	var pErr *PersistenceError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, "decode", pErr.Op)
}

func TestHelpers_WrapStoreFailures(t *testing.T) {
	ctx := context.Background()

	var pErr *PersistenceError
	_, err := LoadJSON(ctx, failingStore{}, "k", new([]string))
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, "get", pErr.Op)

	err = SaveJSON(ctx, failingStore{}, "k", []string{})
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, "set", pErr.Op)

	err = Remove(ctx, failingStore{}, "k")
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, "delete", pErr.Op)
}
