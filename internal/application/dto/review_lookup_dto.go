package dto

import (
	"time"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// ManualReviewResponse respuesta de GET /api/manual-review.
type ManualReviewResponse struct {
	Badge string               `json:"badge"` // "" | "1".."5" | "5+"
	Count int                  `json:"count"`
	Items []ManualCheckItemDTO `json:"items"`
}

// ManualCheckItemDTO ítem de revisión manual sin transformar.
type ManualCheckItemDTO struct {
	ID        string     `json:"id"`
	OrderID   string     `json:"order_id"`
	SKU       string     `json:"sku"`
	CreatedAt *time.Time `json:"created_at"`
}

// NewManualReviewResponse mapea la pestaña de revisión manual.
func NewManualReviewResponse(items []entity.ManualCheckItem, badge string) ManualReviewResponse {
	out := ManualReviewResponse{Badge: badge, Count: len(items), Items: make([]ManualCheckItemDTO, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, ManualCheckItemDTO{ID: it.ID, OrderID: it.OrderID, SKU: it.SKU, CreatedAt: it.CreatedAt})
	}
	return out
}

// LookupResponse resultado de GET /api/lookup. Solo la variante de Kind viene poblada.
type LookupResponse struct {
	RequestID string         `json:"request_id"`
	Kind      string         `json:"kind"` // po_batch | unit | not_found
	Query     string         `json:"query"`
	Message   string         `json:"message,omitempty"`
	Batches   []POBatchDTO   `json:"batches,omitempty"`
	Unit      *UnitDetailDTO `json:"unit,omitempty"`
}

// POBatchDTO seriales de un SKU recibidos bajo la PO.
type POBatchDTO struct {
	SKU          string   `json:"sku"`
	ProductName  string   `json:"product_name"`
	ReceivedDate string   `json:"received_date"`
	Serials      []string `json:"serials"`
}

// UnitDetailDTO detalle de una unidad.
type UnitDetailDTO struct {
	SKU          string `json:"sku"`
	ProductName  string `json:"product_name"`
	ReceivedDate string `json:"received_date"`
	Sold         bool   `json:"sold"`
	IsDamaged    bool   `json:"is_damaged"`
}

// NewLookupResponse mapea el resultado de la búsqueda unificada.
func NewLookupResponse(r entity.LookupResult) LookupResponse {
	out := LookupResponse{RequestID: r.RequestID, Kind: string(r.Kind), Query: r.Query, Message: r.Message()}
	switch r.Kind {
	case entity.LookupPOBatch:
		for _, b := range r.Batches {
			serials := b.Serials
			if serials == nil {
				serials = []string{}
			}
			out.Batches = append(out.Batches, POBatchDTO{SKU: b.SKU, ProductName: b.ProductName, ReceivedDate: b.ReceivedDate, Serials: serials})
		}
	case entity.LookupUnit:
		if r.Unit != nil {
			u := *r.Unit
			out.Unit = &UnitDetailDTO{SKU: u.SKU, ProductName: u.ProductName, ReceivedDate: u.ReceivedDate, Sold: u.Sold, IsDamaged: u.IsDamaged}
		}
	}
	return out
}
