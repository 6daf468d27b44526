package inventory

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// RowBatch resultado de normalizar el feed de productos. Dropped cuenta las filas descartadas
// (diagnóstico para el caller, no es un error).
type RowBatch struct {
	Rows    []entity.InventoryRow
	Dropped int
}

// LogBatch resultado de normalizar el log de despachos.
type LogBatch struct {
	Entries []entity.ShipmentLogEntry
	Dropped int
}

// ManualCheckBatch resultado de normalizar los ítems de revisión manual.
type ManualCheckBatch struct {
	Items   []entity.ManualCheckItem
	Dropped int
}

// BreakdownBatch resultado de normalizar el desglose de un master SKU.
type BreakdownBatch struct {
	Items   []entity.SKUBreakdownItem
	Dropped int
}

// POBatchList resultado de normalizar la respuesta de po-details.
type POBatchList struct {
	Batches []entity.POBatch
	Dropped int
}

// ── Formas crudas (JSON débilmente tipado) ────────────────────────────────────

type rawInventoryRow struct {
	MasterSKUID      *string     `mapstructure:"master_sku_id"`
	Description      string      `mapstructure:"description"`
	ProductID        string      `mapstructure:"product_id"`
	ProductName      string      `mapstructure:"product_name"`
	PartNumber       string      `mapstructure:"part_number"`
	Quantity         interface{} `mapstructure:"quantity"`
	SerialNumber     string      `mapstructure:"serial_number"`
	PONumber         string      `mapstructure:"po_number"`
	SerialAssignedAt interface{} `mapstructure:"serial_assigned_at"`
}

type rawLogEntry struct {
	OrderID      *string     `mapstructure:"order_id"`
	EventTime    interface{} `mapstructure:"event_time"`
	SKU          string      `mapstructure:"sku"`
	SerialNumber string      `mapstructure:"serial_number"`
}

type rawManualCheck struct {
	ID        string      `mapstructure:"id"`
	OrderID   string      `mapstructure:"order_id"`
	SKU       string      `mapstructure:"sku"`
	CreatedAt interface{} `mapstructure:"created_at"`
}

type rawBreakdownItem struct {
	ProductID *string          `mapstructure:"product_id"`
	SKU       string           `mapstructure:"sku"`
	Qty       interface{}      `mapstructure:"qty"`
	Price     *decimal.Decimal `mapstructure:"price"`
}

type rawPOBatch struct {
	SKU          string   `mapstructure:"sku"`
	ProductName  string   `mapstructure:"product_name"`
	ReceivedDate string   `mapstructure:"received_date"`
	Serials      []string `mapstructure:"serials"`
}

type rawUnit struct {
	SKU          string `mapstructure:"sku"`
	ProductName  string `mapstructure:"product_name"`
	ReceivedDate string `mapstructure:"received_date"`
	Sold         bool   `mapstructure:"sold"`
	IsDamaged    bool   `mapstructure:"is_damaged"`
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// decimalHook convierte números JSON (float64, json.Number) y strings numéricos a decimal.Decimal.
func decimalHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != decimalType {
			return data, nil
		}
		switch v := data.(type) {
		case json.Number:
			return decimal.NewFromString(v.String())
		case string:
			return decimal.NewFromString(strings.TrimSpace(v))
		case float64:
			return decimal.NewFromFloat(v), nil
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int64:
			return decimal.NewFromInt(v), nil
		}
		return data, nil
	}
}

func decode(input interface{}, out interface{}) error {
	if _, ok := input.(map[string]interface{}); !ok {
		return errNotAnObject
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       decimalHook(),
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

type normalizeError string

func (e normalizeError) Error() string { return string(e) }

const errNotAnObject = normalizeError("la fila no es un objeto JSON")

// ── Normalizador de filas ─────────────────────────────────────────────────────

// NormalizeRows recorta master_sku_id y coerciona quantity a entero no negativo.
// Las filas sin master_sku_id o que no se pueden decodificar se descartan y se cuentan;
// una fila mala nunca aborta el lote.
func NormalizeRows(raw []interface{}) RowBatch {
	out := RowBatch{Rows: make([]entity.InventoryRow, 0, len(raw))}
	for _, item := range raw {
		var r rawInventoryRow
		if err := decode(item, &r); err != nil || r.MasterSKUID == nil {
			out.Dropped++
			continue
		}
		id := strings.TrimSpace(*r.MasterSKUID)
		if id == "" {
			out.Dropped++
			continue
		}
		row := entity.InventoryRow{
			MasterSKUID:  id,
			Description:  r.Description,
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			PartNumber:   r.PartNumber,
			Quantity:     CoerceQuantity(r.Quantity),
			SerialNumber: strings.TrimSpace(r.SerialNumber),
			PONumber:     r.PONumber,
		}
		if ts, ok := ParseTimestamp(r.SerialAssignedAt); ok {
			row.SerialAssignedAt = &ts
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// NormalizeLogEntries decodifica el log de despachos. Entradas sin event_time válido se descartan.
// order_id ausente o nulo pasa a "unknown"; un "" explícito se conserva como su propia orden.
func NormalizeLogEntries(raw []interface{}) LogBatch {
	out := LogBatch{Entries: make([]entity.ShipmentLogEntry, 0, len(raw))}
	for _, item := range raw {
		var r rawLogEntry
		if err := decode(item, &r); err != nil {
			out.Dropped++
			continue
		}
		ts, ok := ParseTimestamp(r.EventTime)
		if !ok {
			out.Dropped++
			continue
		}
		e := entity.ShipmentLogEntry{OrderID: entity.UnknownOrderID, EventTime: ts, SKU: r.SKU, SerialNumber: r.SerialNumber}
		if r.OrderID != nil {
			e.OrderID = *r.OrderID
		}
		out.Entries = append(out.Entries, e)
	}
	return out
}

// NormalizeManualChecks decodifica los ítems de revisión manual sin transformarlos.
func NormalizeManualChecks(raw []interface{}) ManualCheckBatch {
	out := ManualCheckBatch{Items: make([]entity.ManualCheckItem, 0, len(raw))}
	for _, item := range raw {
		var r rawManualCheck
		if err := decode(item, &r); err != nil {
			out.Dropped++
			continue
		}
		m := entity.ManualCheckItem{ID: r.ID, OrderID: r.OrderID, SKU: r.SKU}
		if ts, ok := ParseTimestamp(r.CreatedAt); ok {
			m.CreatedAt = &ts
		}
		out.Items = append(out.Items, m)
	}
	return out
}

// NormalizeBreakdown decodifica el desglose de un master SKU. Sin product_id la fila se descarta
// (no se podría editar su precio). Un precio no numérico invalida la fila.
func NormalizeBreakdown(raw []interface{}) BreakdownBatch {
	out := BreakdownBatch{Items: make([]entity.SKUBreakdownItem, 0, len(raw))}
	for _, item := range raw {
		var r rawBreakdownItem
		if err := decode(item, &r); err != nil || r.ProductID == nil || strings.TrimSpace(*r.ProductID) == "" {
			out.Dropped++
			continue
		}
		out.Items = append(out.Items, entity.SKUBreakdownItem{
			ProductID: strings.TrimSpace(*r.ProductID),
			SKU:       r.SKU,
			Qty:       CoerceQuantity(r.Qty),
			Price:     r.Price,
		})
	}
	return out
}

// NormalizePOBatches decodifica la respuesta de po-details. Un lote ilegible se omite y se cuenta.
func NormalizePOBatches(raw []interface{}) POBatchList {
	out := POBatchList{Batches: make([]entity.POBatch, 0, len(raw))}
	for _, item := range raw {
		var r rawPOBatch
		if err := decode(item, &r); err != nil {
			out.Dropped++
			continue
		}
		out.Batches = append(out.Batches, entity.POBatch{
			SKU:          r.SKU,
			ProductName:  r.ProductName,
			ReceivedDate: r.ReceivedDate,
			Serials:      r.Serials,
		})
	}
	return out
}

// NormalizeUnit decodifica la respuesta de unit-details.
func NormalizeUnit(raw map[string]interface{}) (*entity.UnitDetail, error) {
	var r rawUnit
	if err := decode(raw, &r); err != nil {
		return nil, err
	}
	return &entity.UnitDetail{
		SKU:          r.SKU,
		ProductName:  r.ProductName,
		ReceivedDate: r.ReceivedDate,
		Sold:         r.Sold,
		IsDamaged:    r.IsDamaged,
	}, nil
}

// ── Coerciones ────────────────────────────────────────────────────────────────

// CoerceQuantity convierte un valor JSON a cantidad entera no negativa. Ausente o inválido = 0.
func CoerceQuantity(v interface{}) int {
	var f float64
	switch q := v.(type) {
	case nil:
		return 0
	case int:
		f = float64(q)
	case int64:
		f = float64(q)
	case float64:
		f = q
	case json.Number:
		n, err := q.Float64()
		if err != nil {
			return 0
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp interpreta los formatos de fecha que devuelve la API. Sin zona = UTC.
func ParseTimestamp(v interface{}) (time.Time, bool) {
	switch ts := v.(type) {
	case time.Time:
		return ts, !ts.IsZero()
	case string:
		s := strings.TrimSpace(ts)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
