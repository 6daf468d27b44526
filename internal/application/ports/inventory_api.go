package ports

import (
	"context"
	"io"

	"github.com/shopspring/decimal"
)

// Los puertos de la API de inventario devuelven JSON débilmente tipado ([]interface{} de objetos);
// la normalización pertenece al dominio (inventory.Normalize*).
// Toda implementación distingue "no encontrado" (domain.ErrNotFound) de un fallo de
// transporte (domain.ErrTransport).

// InventoryFeed feeds de solo lectura que alimentan las vistas del dashboard.
type InventoryFeed interface {
	FetchProductRows(ctx context.Context) ([]interface{}, error)
	FetchShipmentLog(ctx context.Context) ([]interface{}, error)
	FetchManualChecks(ctx context.Context) ([]interface{}, error)
}

// BreakdownAPI desglose por master SKU y envío de precios.
type BreakdownAPI interface {
	FetchBreakdown(ctx context.Context, masterSKUID string) ([]interface{}, error)
	// SubmitPrice envía el override de precio; solo importa éxito/fallo.
	SubmitPrice(ctx context.Context, productID string, price decimal.Decimal) error
}

// LookupAPI búsquedas puntuales por PO y por número de serie.
type LookupAPI interface {
	// LookupPO devuelve los lotes de la PO; slice vacío = sin coincidencia (no es error).
	LookupPO(ctx context.Context, poNumber string) ([]interface{}, error)
	// LookupUnit devuelve el detalle de la unidad o domain.ErrNotFound.
	LookupUnit(ctx context.Context, serialNumber string) (map[string]interface{}, error)
}

// ReportAPI exportación mensual (flujo binario opaco). El caller cierra el ReadCloser.
type ReportAPI interface {
	ExportMonthlyReport(ctx context.Context) (body io.ReadCloser, contentType string, err error)
}

// InventoryAPI agrupa todos los endpoints colaboradores.
type InventoryAPI interface {
	InventoryFeed
	BreakdownAPI
	LookupAPI
	ReportAPI
}
