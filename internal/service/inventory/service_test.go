package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/railtools/internal/domain/models"
	"github.com/mamadbah2/railtools/internal/repository/kv"
)

func newTestService() (*Service, *kv.MemoryStore) {
	store := kv.NewMemoryStore()
	svc := NewService(store, nil)
	svc.newID = func() string { return "new-id" }
	return svc, store
}

func TestLoad_KeepsSeedWhenNothingStored(t *testing.T) {
	svc, _ := newTestService()

	require.NoError(t, svc.Load(context.Background()))

	items := svc.List()
	require.Len(t, items, 8)
	assert.Equal(t, "Carril UIC 60", items[0].Name)
	assert.Equal(t, "m²", items[7].Unit)
}

func TestAdd_ValidatesAndDefaultsUnit(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	item, err := svc.Add(ctx, ItemInput{Name: " Travessas de Madeira ", Quantity: "40", Location: "Armazém D"})
	require.NoError(t, err)
	assert.Equal(t, models.InventoryItem{
		ID: "new-id", Name: "Travessas de Madeira", Quantity: 40, Location: "Armazém D", Unit: DefaultUnit,
	}, item)

	var persisted []models.InventoryItem
	found, err := kv.LoadJSON(ctx, store, StorageKey, &persisted)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, persisted, 9)
	assert.Equal(t, item, persisted[8])
}

func TestAdd_RejectsBadInput(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name string
		in   ItemInput
		want error
	}{
		{"missing name", ItemInput{Quantity: "1", Location: "A"}, ErrMissingFields},
		{"missing quantity", ItemInput{Name: "x", Location: "A"}, ErrMissingFields},
		{"missing location", ItemInput{Name: "x", Quantity: "1"}, ErrMissingFields},
		{"fractional quantity", ItemInput{Name: "x", Quantity: "1.5", Location: "A"}, ErrInvalidQuantity},
		{"negative quantity", ItemInput{Name: "x", Quantity: "-3", Location: "A"}, ErrInvalidQuantity},
		{"unknown unit", ItemInput{Name: "x", Quantity: "1", Location: "A", Unit: "kg"}, ErrInvalidUnit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Len(t, svc.List(), 8)
}

func TestUpdateAndDelete(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	updated, err := svc.Update(ctx, "3", ItemInput{Name: "Balastro Granítico", Quantity: "450", Location: "Armazém B", Unit: "ton"})
	require.NoError(t, err)
	assert.Equal(t, 450, updated.Quantity)

	got, err := svc.Get("3")
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, svc.Delete(ctx, "1"))
	items := svc.List()
	require.Len(t, items, 7)
	assert.Equal(t, "2", items[0].ID)

	_, err = svc.Update(ctx, "99", ItemInput{Name: "x", Quantity: "1", Location: "A"})
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "99"), ErrItemNotFound)

	reloaded := NewService(store, nil)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, items, reloaded.List())
}
