package entity

import "time"

// ManualCheckItem evento de inventario marcado para revisión manual. Se expone sin transformar.
type ManualCheckItem struct {
	ID        string
	OrderID   string
	SKU       string
	CreatedAt *time.Time
}
