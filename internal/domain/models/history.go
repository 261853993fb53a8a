package models

// HistoryLimit caps the persisted calculation history.
const HistoryLimit = 50

// TimestampLayout renders timestamps as millisecond ISO-8601 in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// HistoryEntry is a persisted calculation. Entries are never edited after
// they are appended.
type HistoryEntry struct {
	ID              string   `json:"id"`
	ThemeName       string   `json:"themeName"`
	CalculationType string   `json:"calculationType"`
	Inputs          Inputs   `json:"inputs"`
	Result          string   `json:"result"`
	Timestamp       string   `json:"timestamp"`
	Images          []string `json:"images,omitempty"`
}
