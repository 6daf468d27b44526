package entity

import "time"

// UnknownOrderID agrupa las entradas del log sin order_id.
const UnknownOrderID = "unknown"

// ShipmentLogEntry registro inmutable del log de despachos.
type ShipmentLogEntry struct {
	OrderID      string // "" si la API no lo informa
	EventTime    time.Time
	SKU          string
	SerialNumber string
}

// OrderLogGroup entradas de una orden dentro de la ventana de retención.
// Entries conserva el orden de llegada; LatestEventTime es el máximo de EventTime.
type OrderLogGroup struct {
	OrderID         string
	Entries         []ShipmentLogEntry
	LatestEventTime time.Time
}

// LogSnapshot foto del log agrupado tomada en FetchedAt. No se re-evalúa la ventana.
type LogSnapshot struct {
	Groups     map[string]*OrderLogGroup
	FetchedAt  time.Time
	WindowDays int
	Dropped    int
}
