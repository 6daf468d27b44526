package dto

import (
	"time"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// WarehouseResponse respuesta de GET /api/warehouse.
type WarehouseResponse struct {
	Mode    string              `json:"mode"`
	Groups  []MasterSKUGroupDTO `json:"groups"`
	Dropped int                 `json:"dropped"` // filas descartadas por datos inválidos
}

// MasterSKUGroupDTO fila de la tabla de bodega.
type MasterSKUGroupDTO struct {
	MasterSKUID string             `json:"master_sku_id"`
	DisplayID   string             `json:"display_id"` // sin prefijo "MSKU-"
	Description string             `json:"description"`
	Quantity    int                `json:"quantity"`
	Products    []ProductRollupDTO `json:"products"`
}

// ProductRollupDTO producto dentro del master SKU.
type ProductRollupDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	PartNumber  string          `json:"part_number"`
	Quantity    int             `json:"quantity"`
	Serials     []SerialUnitDTO `json:"serials,omitempty"`
}

// SerialUnitDTO unidad serializada.
type SerialUnitDTO struct {
	SerialNumber string     `json:"serial_number"`
	PONumber     string     `json:"po_number,omitempty"`
	ScannedAt    *time.Time `json:"scanned_at,omitempty"`
}

// NewWarehouseResponse arma la respuesta a partir de los grupos ya ordenados y filtrados.
func NewWarehouseResponse(mode entity.AggregationMode, groups []entity.MasterSKUGroup, dropped int) WarehouseResponse {
	out := WarehouseResponse{Mode: string(mode), Groups: make([]MasterSKUGroupDTO, 0, len(groups)), Dropped: dropped}
	for _, g := range groups {
		products := make([]ProductRollupDTO, 0, len(g.Products))
		for _, p := range g.Products {
			var serials []SerialUnitDTO
			for _, s := range p.Serials {
				serials = append(serials, SerialUnitDTO{SerialNumber: s.SerialNumber, PONumber: s.PONumber, ScannedAt: s.ScannedAt})
			}
			products = append(products, ProductRollupDTO{
				ProductID:   p.ProductID,
				ProductName: p.ProductName,
				PartNumber:  p.PartNumber,
				Quantity:    p.Quantity,
				Serials:     serials,
			})
		}
		out.Groups = append(out.Groups, MasterSKUGroupDTO{
			MasterSKUID: g.MasterSKUID,
			DisplayID:   g.DisplayID(),
			Description: g.Description,
			Quantity:    g.Quantity,
			Products:    products,
		})
	}
	return out
}
