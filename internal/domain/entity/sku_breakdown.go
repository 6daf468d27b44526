package entity

import "github.com/shopspring/decimal"

// SKUBreakdownItem producto constituyente de un master SKU con cantidad y precio.
// Price nil = sin precio asignado. El estado de edición vive fuera de la entidad.
type SKUBreakdownItem struct {
	ProductID string
	SKU       string
	Qty       int
	Price     *decimal.Decimal
}
