package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/railtools/internal/domain/models"
	"github.com/mamadbah2/railtools/internal/repository/kv"
)

// StorageKey is the key the inventory list is persisted under.
const StorageKey = "@inventory_items"

// DefaultUnit is applied when an item is saved without a unit.
const DefaultUnit = "ton"

var (
	// ErrMissingFields is returned when name, quantity or location is blank.
	ErrMissingFields = errors.New("name, quantity and location are required")
	// ErrInvalidQuantity is returned for a quantity that is not a whole number >= 0.
	ErrInvalidQuantity = errors.New("quantity must be a whole number")
	// ErrInvalidUnit is returned for a unit outside Units.
	ErrInvalidUnit = errors.New("unknown unit")
	// ErrItemNotFound is returned when no item has the requested id.
	ErrItemNotFound = errors.New("inventory item not found")
)

// Units lists the accepted stock units.
var Units = []string{"unid", "m", "ton", "m²"}

// ItemInput carries the editable fields of an item. Quantity accepts both JSON
// numbers and numeric strings.
type ItemInput struct {
	Name     string      `json:"name"`
	Quantity json.Number `json:"quantity"`
	Location string      `json:"location"`
	Unit     string      `json:"unit"`
}

// SeedItems returns the stock shown before anything was saved.
func SeedItems() []models.InventoryItem {
	return []models.InventoryItem{
		{ID: "1", Name: "Carril UIC 60", Quantity: 120, Location: "Armazém A", Unit: "unid"},
		{ID: "2", Name: "Travessas de Betão", Quantity: 800, Location: "Armazém A", Unit: "unid"},
		{ID: "3", Name: "Balastro Granítico", Quantity: 500, Location: "Armazém B", Unit: "ton"},
		{ID: "4", Name: "Fixações Pandrol", Quantity: 2400, Location: "Armazém A", Unit: "unid"},
		{ID: "5", Name: "Cabo Catenária Cu 107mm²", Quantity: 1500, Location: "Armazém C", Unit: "m"},
		{ID: "6", Name: "Isoladores Cerâmicos", Quantity: 350, Location: "Armazém C", Unit: "unid"},
		{ID: "7", Name: "Parafusos M24", Quantity: 5000, Location: "Armazém B", Unit: "unid"},
		{ID: "8", Name: "Geotêxtil", Quantity: 2000, Location: "Armazém B", Unit: "m²"},
	}
}

// Service manages the material stock list.
type Service struct {
	store  kv.Store
	logger *zap.Logger
	newID  func() string

	mu    sync.Mutex
	items []models.InventoryItem
}

// NewService wires an inventory service holding the seed items until Load
// finds a persisted list.
func NewService(store kv.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		newID:  func() string { return uuid.NewString() },
		items:  SeedItems(),
	}
}

// Load reads the persisted list. When nothing is stored the seed stays in place.
func (s *Service) Load(ctx context.Context) error {
	var stored []models.InventoryItem
	found, err := kv.LoadJSON(ctx, s.store, StorageKey, &stored)
	if err != nil {
		s.logger.Warn("failed to load inventory, keeping seed items", zap.Error(err))
		return err
	}
	if !found {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = stored
	return nil
}

// List returns a copy of the items in insertion order.
func (s *Service) List() []models.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.InventoryItem(nil), s.items...)
}

// Get returns the item with the given id.
func (s *Service) Get(id string) (models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.InventoryItem{}, fmt.Errorf("item %q: %w", id, ErrItemNotFound)
	}
	return s.items[i], nil
}

// Add validates input and appends a new item.
func (s *Service) Add(ctx context.Context, in ItemInput) (models.InventoryItem, error) {
	item, err := normalize(in)
	if err != nil {
		return models.InventoryItem{}, err
	}
	item.ID = s.newID()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(append([]models.InventoryItem(nil), s.items...), item)
	s.commit(ctx, next)
	s.logger.Info("inventory item added", zap.String("item_id", item.ID), zap.String("name", item.Name))
	return item, nil
}

// Update replaces the editable fields of an existing item.
func (s *Service) Update(ctx context.Context, id string, in ItemInput) (models.InventoryItem, error) {
	item, err := normalize(in)
	if err != nil {
		return models.InventoryItem{}, err
	}
	item.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.InventoryItem{}, fmt.Errorf("item %q: %w", id, ErrItemNotFound)
	}
	next := append([]models.InventoryItem(nil), s.items...)
	next[i] = item
	s.commit(ctx, next)
	return item, nil
}

// Delete removes the item with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("item %q: %w", id, ErrItemNotFound)
	}
	next := make([]models.InventoryItem, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	s.commit(ctx, next)
	return nil
}

func (s *Service) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// commit must be called with mu held.
func (s *Service) commit(ctx context.Context, next []models.InventoryItem) {
	s.items = next
	if err := kv.SaveJSON(ctx, s.store, StorageKey, next); err != nil {
		s.logger.Error("failed to persist inventory", zap.Error(err))
	}
}

func normalize(in ItemInput) (models.InventoryItem, error) {
	name := strings.TrimSpace(in.Name)
	location := strings.TrimSpace(in.Location)
	rawQty := strings.TrimSpace(in.Quantity.String())
	if name == "" || location == "" || rawQty == "" {
		return models.InventoryItem{}, ErrMissingFields
	}

	qty, err := strconv.Atoi(rawQty)
	if err != nil || qty < 0 {
		return models.InventoryItem{}, fmt.Errorf("%q: %w", rawQty, ErrInvalidQuantity)
	}

	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = DefaultUnit
	}
	if !validUnit(unit) {
		return models.InventoryItem{}, fmt.Errorf("%q: %w", unit, ErrInvalidUnit)
	}

	return models.InventoryItem{Name: name, Quantity: qty, Location: location, Unit: unit}, nil
}

func validUnit(unit string) bool {
	for _, u := range Units {
		if u == unit {
			return true
		}
	}
	return false
}
