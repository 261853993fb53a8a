package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/railtools/internal/domain/models"
	repo "github.com/mamadbah2/railtools/internal/repository/sheets"
)

const (
	dateLayout         = "2006-01-02"
	historyDataRange   = "Historico!A:F"
	historyIDRange     = "Historico!A:A"
	inventoryDataRange = "Inventario!A:F"
)

// the spreadsheet snapshot is dated, so it carries one more column than the workbook
var sheetInventoryHeaders = append([]interface{}{"Data"}, inventoryHeaders...)

// HistorySource exposes the saved calculations.
type HistorySource interface {
	List() []models.HistoryEntry
}

// InventorySource exposes the current stock.
type InventorySource interface {
	List() []models.InventoryItem
}

// Service builds history summaries and exports them.
type Service struct {
	repo      repo.Repository
	history   HistorySource
	inventory InventorySource
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance. repository may be nil
// when Google Sheets export is not configured.
func NewService(repository repo.Repository, history HistorySource, inventory InventorySource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repository,
		history:   history,
		inventory: inventory,
		logger:    logger,
		now:       time.Now,
	}
}

// SheetsEnabled reports whether ExportToSheets can run.
func (s *Service) SheetsEnabled() bool {
	return s.repo != nil
}

// Summarize groups the history per theme, most used first, and totals the
// stock per warehouse.
func (s *Service) Summarize() models.HistoryReport {
	entries := s.history.List()

	byTheme := make(map[string]*models.ThemeSummary)
	var order []string
	for _, e := range entries {
		summary, ok := byTheme[e.ThemeName]
		if !ok {
			// entries are newest first, so the first hit is the latest one
			summary = &models.ThemeSummary{ThemeName: e.ThemeName, LastCalculated: e.Timestamp}
			byTheme[e.ThemeName] = summary
			order = append(order, e.ThemeName)
		}
		summary.Count++
		if !contains(summary.CalculationTypes, e.CalculationType) {
			summary.CalculationTypes = append(summary.CalculationTypes, e.CalculationType)
		}
	}

	themes := make([]models.ThemeSummary, 0, len(order))
	for _, name := range order {
		themes = append(themes, *byTheme[name])
	}
	sort.SliceStable(themes, func(i, j int) bool {
		return themes[i].Count > themes[j].Count
	})

	report := models.HistoryReport{
		GeneratedAt:         s.now().UTC(),
		TotalEntries:        len(entries),
		Themes:              themes,
		InventoryByLocation: make(map[string]int),
	}
	if s.inventory != nil {
		items := s.inventory.List()
		report.InventoryItems = len(items)
		for _, item := range items {
			report.InventoryByLocation[item.Location]++
		}
	}
	return report
}

// ExportToSheets appends history entries not yet present in the spreadsheet
// and a dated snapshot of the stock.
func (s *Service) ExportToSheets(ctx context.Context) (models.ExportResult, error) {
	var result models.ExportResult
	if s.repo == nil {
		return result, fmt.Errorf("google sheets export is not configured")
	}

	if err := s.repo.EnsureHeader(ctx, historyDataRange, historyHeaders); err != nil {
		return result, fmt.Errorf("prepare history sheet: %w", err)
	}
	exported, err := s.exportedIDs(ctx)
	if err != nil {
		return result, err
	}

	entries := s.history.List()
	var historyRows [][]interface{}
	// oldest first so the sheet reads chronologically
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if _, ok := exported[e.ID]; ok {
			continue
		}
		historyRows = append(historyRows, historyRow(e))
	}
	if err := s.repo.WriteRows(ctx, historyDataRange, historyRows); err != nil {
		return result, fmt.Errorf("export history: %w", err)
	}
	result.HistoryRows = len(historyRows)

	if s.inventory != nil {
		if err := s.repo.EnsureHeader(ctx, inventoryDataRange, sheetInventoryHeaders); err != nil {
			return result, fmt.Errorf("prepare inventory sheet: %w", err)
		}
		date := s.now().Format(dateLayout)
		var inventoryRows [][]interface{}
		for _, item := range s.inventory.List() {
			inventoryRows = append(inventoryRows, []interface{}{date, item.ID, item.Name, item.Quantity, item.Unit, item.Location})
		}
		if err := s.repo.WriteRows(ctx, inventoryDataRange, inventoryRows); err != nil {
			return result, fmt.Errorf("export inventory: %w", err)
		}
		result.InventoryRows = len(inventoryRows)
	}

	s.logger.Info("exported to google sheets",
		zap.Int("history_rows", result.HistoryRows),
		zap.Int("inventory_rows", result.InventoryRows))
	return result, nil
}

func (s *Service) exportedIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.repo.ReadRange(ctx, historyIDRange)
	if err != nil {
		return nil, fmt.Errorf("load exported history ids: %w", err)
	}

	ids := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		id := strings.TrimSpace(fmt.Sprint(row[0]))
		if id == "" {
			s.logger.Debug("skip history row without id")
			continue
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}

func historyRow(e models.HistoryEntry) []interface{} {
	return []interface{}{e.ID, e.Timestamp, e.ThemeName, e.CalculationType, formatInputs(e.Inputs), e.Result}
}

func formatInputs(inputs models.Inputs) string {
	parts := make([]string, 0, len(inputs))
	for _, f := range inputs {
		parts = append(parts, f.Label+": "+f.Value)
	}
	return strings.Join(parts, "; ")
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
