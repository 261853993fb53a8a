package history

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/railtools/internal/domain/models"
	"github.com/mamadbah2/railtools/internal/repository/kv"
)

// StorageKey is the key the history list is persisted under.
const StorageKey = "@calculation_history"

// Service keeps the most recent calculations, newest first, and mirrors
// every change to the key-value store.
type Service struct {
	store  kv.Store
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries []models.HistoryEntry
	lastID  int64
}

// NewService wires a history service. Call Load to pick up persisted entries.
func NewService(store kv.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Load replaces the in-memory list with what the store holds. On failure the
// list is left empty and the error is returned.
func (s *Service) Load(ctx context.Context) error {
	var stored []models.HistoryEntry
	_, err := kv.LoadJSON(ctx, s.store, StorageKey, &stored)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.entries = nil
		s.logger.Error("failed to load calculation history", zap.Error(err))
		return err
	}
	if len(stored) > models.HistoryLimit {
		stored = stored[:models.HistoryLimit]
	}
	s.entries = stored
	for _, e := range stored {
		if id, err := strconv.ParseInt(e.ID, 10, 64); err == nil && id > s.lastID {
			s.lastID = id
		}
	}
	s.logger.Debug("calculation history loaded", zap.Int("entries", len(stored)))
	return nil
}

// Append records a calculation at the head of the list. The entry is kept in
// memory even when persisting it fails.
func (s *Service) Append(ctx context.Context, result models.Result, images ...string) models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	entry := models.HistoryEntry{
		ID:              strconv.FormatInt(id, 10),
		ThemeName:       result.ThemeName,
		CalculationType: result.CalculationType,
		Inputs:          append(models.Inputs(nil), result.Inputs...),
		Result:          result.Summary,
		Timestamp:       now.Format(models.TimestampLayout),
	}
	if len(images) > 0 {
		entry.Images = append([]string(nil), images...)
	}

	entries := make([]models.HistoryEntry, 0, len(s.entries)+1)
	entries = append(entries, entry)
	entries = append(entries, s.entries...)
	if len(entries) > models.HistoryLimit {
		entries = entries[:models.HistoryLimit]
	}
	s.entries = entries

	if err := kv.SaveJSON(ctx, s.store, StorageKey, s.entries); err != nil {
		s.logger.Error("failed to persist calculation history", zap.String("entry_id", entry.ID), zap.Error(err))
	}
	return entry
}

// List returns a copy of the entries, newest first.
func (s *Service) List() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear drops every entry and removes the persisted key.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	if err := kv.Remove(ctx, s.store, StorageKey); err != nil {
		s.logger.Error("failed to clear calculation history", zap.Error(err))
	}
}
