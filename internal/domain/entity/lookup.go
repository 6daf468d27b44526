package entity

import "fmt"

// LookupKind variante del resultado de búsqueda unificada.
type LookupKind string

const (
	LookupPOBatch  LookupKind = "po_batch"
	LookupUnit     LookupKind = "unit"
	LookupNotFound LookupKind = "not_found"
)

// POBatch seriales recibidos de un SKU bajo una PO en una fecha.
type POBatch struct {
	SKU          string
	ProductName  string
	ReceivedDate string
	Serials      []string
}

// UnitDetail detalle de una unidad por número de serie.
type UnitDetail struct {
	SKU          string
	ProductName  string
	ReceivedDate string
	Sold         bool
	IsDamaged    bool
}

// LookupResult unión etiquetada: solo la variante indicada por Kind está poblada.
// RequestID identifica la consulta para que el caller descarte resultados superados.
type LookupResult struct {
	RequestID string
	Kind      LookupKind
	Query     string
	Batches   []POBatch
	Unit      *UnitDetail
}

// Message texto para el usuario en el caso NotFound.
func (r LookupResult) Message() string {
	if r.Kind != LookupNotFound {
		return ""
	}
	return fmt.Sprintf("No results found for: %s", r.Query)
}
