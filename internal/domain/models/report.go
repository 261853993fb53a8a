package models

import "time"

// ThemeSummary aggregates the saved calculations of one theme.
type ThemeSummary struct {
	ThemeName        string   `json:"themeName"`
	Count            int      `json:"count"`
	LastCalculated   string   `json:"lastCalculated"`
	CalculationTypes []string `json:"calculationTypes"`
}

// HistoryReport is the periodic overview of history and stock.
type HistoryReport struct {
	GeneratedAt         time.Time      `json:"generatedAt"`
	TotalEntries        int            `json:"totalEntries"`
	Themes              []ThemeSummary `json:"themes"`
	InventoryItems      int            `json:"inventoryItems"`
	InventoryByLocation map[string]int `json:"inventoryByLocation"`
}

// ExportResult counts the rows written by one export run.
type ExportResult struct {
	HistoryRows   int `json:"historyRows"`
	InventoryRows int `json:"inventoryRows"`
}
