package entity

import (
	"strings"
	"time"
)

// MasterSKUPrefix prefijo literal que se omite al mostrar y ordenar los master SKU.
const MasterSKUPrefix = "MSKU-"

// AggregationMode estrategia de agregación sobre el mismo vocabulario de filas.
type AggregationMode string

const (
	// AggregateByQuantitySum suma el campo quantity de cada fila.
	AggregateByQuantitySum AggregationMode = "quantity"
	// AggregateBySerial cuenta las filas con número de serie.
	AggregateBySerial AggregationMode = "serial"
)

// ParseAggregationMode convierte el valor de configuración/query; vacío = ByQuantitySum.
func ParseAggregationMode(s string) (AggregationMode, bool) {
	switch AggregationMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", AggregateByQuantitySum:
		return AggregateByQuantitySum, true
	case AggregateBySerial:
		return AggregateBySerial, true
	}
	return "", false
}

// MasterSKUGroup agregado por master SKU. Quantity es la suma (o el conteo de seriales) de sus filas.
type MasterSKUGroup struct {
	MasterSKUID string
	Description string
	Quantity    int
	Products    []ProductRollup // orden de primera aparición
}

// DisplayID devuelve el id sin el prefijo "MSKU-".
func (g MasterSKUGroup) DisplayID() string {
	return strings.TrimPrefix(g.MasterSKUID, MasterSKUPrefix)
}

// ProductRollup desglose de un producto dentro del master SKU.
type ProductRollup struct {
	ProductID   string
	ProductName string
	PartNumber  string
	Quantity    int
	Serials     []SerialUnit
}

// SerialUnit unidad serializada recibida bajo una PO.
type SerialUnit struct {
	SerialNumber string
	PONumber     string
	ScannedAt    *time.Time
}
