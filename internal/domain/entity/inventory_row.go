package entity

import "time"

// InventoryRow fila normalizada del feed de productos (una por producto o por unidad serializada).
// MasterSKUID siempre llega recortado (sin espacios alrededor).
type InventoryRow struct {
	MasterSKUID      string
	Description      string
	ProductID        string
	ProductName      string
	PartNumber       string
	Quantity         int // nunca negativo
	SerialNumber     string
	PONumber         string
	SerialAssignedAt *time.Time
}

// HasSerial indica si la fila representa una unidad serializada.
func (r InventoryRow) HasSerial() bool {
	return r.SerialNumber != ""
}
