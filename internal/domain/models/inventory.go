package models

// InventoryItem is a stocked material tracked per warehouse.
type InventoryItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Location string `json:"location"`
	Unit     string `json:"unit"`
}
