package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/railtools/internal/domain/models"
	"github.com/mamadbah2/railtools/internal/repository/kv"
)

type brokenStore struct {
	*kv.MemoryStore
}

func (brokenStore) Set(context.Context, string, []byte) error { return errors.New("quota exceeded") }

func fixedClock() func() time.Time {
	t := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func sampleResult(n int) models.Result {
	inputs := models.Inputs{}.Add("Comprimento", fmt.Sprintf("%d m", n))
	return models.Result{
		ThemeID:         models.ThemeBallast,
		ThemeName:       "Balastro",
		CalculationType: "Volume de Balastro",
		Inputs:          inputs,
		Summary:         fmt.Sprintf("%d m³", n),
	}
}

func TestAppend_NewestFirstWithUniqueIDs(t *testing.T) {
	svc := NewService(kv.NewMemoryStore(), nil)
	svc.now = fixedClock()
	ctx := context.Background()

	first := svc.Append(ctx, sampleResult(1))
	second := svc.Append(ctx, sampleResult(2), "file:///a.jpg")

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "2024-03-01T10:00:00.000Z", first.Timestamp)
	assert.Equal(t, "2 m³", list[0].Result)
	assert.Equal(t, []string{"file:///a.jpg"}, list[0].Images)
	assert.Nil(t, list[1].Images)
}

func TestAppend_CapsAtLimit(t *testing.T) {
	store := kv.NewMemoryStore()
	svc := NewService(store, nil)
	ctx := context.Background()

	for i := 1; i <= models.HistoryLimit+1; i++ {
		svc.Append(ctx, sampleResult(i))
	}

	list := svc.List()
	require.Len(t, list, models.HistoryLimit)
	assert.Equal(t, "51 m³", list[0].Result)
	assert.Equal(t, "2 m³", list[len(list)-1].Result)

	reloaded := NewService(store, nil)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, list, reloaded.List())
}

func TestLoad_RestoresPersistedEntries(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	writer := NewService(store, nil)
	writer.now = fixedClock()
	entry := writer.Append(ctx, sampleResult(7))

	reader := NewService(store, nil)
	reader.now = fixedClock()
	require.NoError(t, reader.Load(ctx))
	list := reader.List()
	require.Len(t, list, 1)
	assert.Equal(t, entry, list[0])
	assert.Equal(t, "Comprimento", list[0].Inputs[0].Label)

	next := reader.Append(ctx, sampleResult(8))
	assert.Greater(t, next.ID, entry.ID)
}

func TestLoad_CorruptBlobLeavesHistoryEmpty(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, StorageKey, []byte("not-json")))

	svc := NewService(store, nil)
	err := svc.Load(ctx)

	var pErr *kv.PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.Empty(t, svc.List())
}

func TestAppend_PersistenceFailureKeepsMemoryState(t *testing.T) {
	svc := NewService(&brokenStore{MemoryStore: kv.NewMemoryStore()}, nil)

	svc.Append(context.Background(), sampleResult(1))

	assert.Len(t, svc.List(), 1)
}

func TestClear_RemovesEverything(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	svc := NewService(store, nil)
	svc.Append(ctx, sampleResult(1))

	svc.Clear(ctx)

	assert.Empty(t, svc.List())
	_, err := store.Get(ctx, StorageKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}
