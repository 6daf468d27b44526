package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dashboard/internal/application/pricing"
)

// BreakdownResponse desglose de un master SKU.
type BreakdownResponse struct {
	MasterSKUID string             `json:"master_sku_id"`
	Items       []BreakdownItemDTO `json:"items"`
}

// BreakdownItemDTO producto del desglose. Price es numérico JSON; null = sin precio asignado.
type BreakdownItemDTO struct {
	ProductID   string       `json:"product_id"`
	SKU         string       `json:"sku"`
	Qty         int          `json:"qty"`
	Price       *json.Number `json:"price"`
	PendingEdit bool         `json:"pending_edit"`
}

// UpdatePriceRequest cuerpo de POST .../price. Price llega como texto tal cual se tecleó.
type UpdatePriceRequest struct {
	Price string `json:"price"`
}

// CommitPriceResponse resultado del commit: committed con el desglose re-leído, o noop.
type CommitPriceResponse struct {
	Outcome   string             `json:"outcome"`
	Breakdown *BreakdownResponse `json:"breakdown,omitempty"`
}

// EditStateResponse respuesta de focus/blur.
type EditStateResponse struct {
	ProductID string `json:"product_id"`
	Phase     string `json:"phase"`
}

// NewBreakdownResponse mapea las filas del reconciliador.
func NewBreakdownResponse(masterSKUID string, rows []pricing.BreakdownRow) BreakdownResponse {
	out := BreakdownResponse{MasterSKUID: masterSKUID, Items: make([]BreakdownItemDTO, 0, len(rows))}
	for _, r := range rows {
		out.Items = append(out.Items, BreakdownItemDTO{
			ProductID:   r.Item.ProductID,
			SKU:         r.Item.SKU,
			Qty:         r.Item.Qty,
			Price:       priceNumber(r.Item.Price),
			PendingEdit: r.PendingEdit,
		})
	}
	return out
}

// priceNumber precio como número JSON con al menos dos decimales (12.5 → 12.50).
// Más decimales se conservan tal cual.
func priceNumber(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	s := d.String()
	if d.Exponent() >= -2 {
		s = d.StringFixed(2)
	}
	n := json.Number(s)
	return &n
}
