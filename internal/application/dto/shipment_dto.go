package dto

import (
	"time"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/inventory"
)

// DisplayTimeLayout formato de fecha/hora de las vistas (en-US).
const DisplayTimeLayout = "1/2/2006, 3:04:05 PM"

// ShipmentLogResponse respuesta de GET /api/shipments.
type ShipmentLogResponse struct {
	FetchedAt  time.Time       `json:"fetched_at"`
	WindowDays int             `json:"window_days"`
	Dropped    int             `json:"dropped"`
	Orders     []OrderGroupDTO `json:"orders"` // último evento más reciente primero
}

// OrderGroupDTO entradas de una orden.
type OrderGroupDTO struct {
	OrderID         string        `json:"order_id"`
	LatestEventTime time.Time     `json:"latest_event_time"`
	Entries         []LogEntryDTO `json:"entries"`
}

// LogEntryDTO evento de despacho; DisplayTime en la zona horaria configurada.
type LogEntryDTO struct {
	EventTime    time.Time `json:"event_time"`
	DisplayTime  string    `json:"display_time"`
	SKU          string    `json:"sku"`
	SerialNumber string    `json:"serial_number,omitempty"`
}

// NewShipmentLogResponse mapea la foto del log; loc nil = UTC.
func NewShipmentLogResponse(snap *entity.LogSnapshot, loc *time.Location) ShipmentLogResponse {
	if loc == nil {
		loc = time.UTC
	}
	out := ShipmentLogResponse{Orders: []OrderGroupDTO{}}
	if snap == nil {
		return out
	}
	out.FetchedAt = snap.FetchedAt
	out.WindowDays = snap.WindowDays
	out.Dropped = snap.Dropped
	for _, g := range inventory.SortGroups(snap.Groups) {
		entries := make([]LogEntryDTO, 0, len(g.Entries))
		for _, e := range g.Entries {
			entries = append(entries, LogEntryDTO{
				EventTime:    e.EventTime,
				DisplayTime:  e.EventTime.In(loc).Format(DisplayTimeLayout),
				SKU:          e.SKU,
				SerialNumber: e.SerialNumber,
			})
		}
		out.Orders = append(out.Orders, OrderGroupDTO{OrderID: g.OrderID, LatestEventTime: g.LatestEventTime, Entries: entries})
	}
	return out
}

// VisibilityRequest cuerpo de PUT /api/visibility.
type VisibilityRequest struct {
	Visible *bool `json:"visible"`
}

// VisibilityResponse estado de visibilidad actual.
type VisibilityResponse struct {
	Visible bool `json:"visible"`
}

// RefreshResponse resultado de POST /api/shipments/refresh.
type RefreshResponse struct {
	Orders    int       `json:"orders"`
	FetchedAt time.Time `json:"fetched_at"`
}
