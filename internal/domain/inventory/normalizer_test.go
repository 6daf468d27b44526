package inventory_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/inventory"
)

func row(fields map[string]interface{}) interface{} { return fields }

func TestNormalizeRows_RecortaMasterSKU(t *testing.T) {
	batch := inventory.NormalizeRows([]interface{}{
		row(map[string]interface{}{"master_sku_id": "  MSKU-1 ", "quantity": 5.0}),
	})

	require.Len(t, batch.Rows, 1)
	assert.Equal(t, "MSKU-1", batch.Rows[0].MasterSKUID)
	assert.Equal(t, 5, batch.Rows[0].Quantity)
	assert.Zero(t, batch.Dropped)
}

func TestNormalizeRows_DescartaSinMasterSKUYCuenta(t *testing.T) {
	batch := inventory.NormalizeRows([]interface{}{
		row(map[string]interface{}{"quantity": 3.0}),
		row(map[string]interface{}{"master_sku_id": "   ", "quantity": 3.0}),
		row(map[string]interface{}{"master_sku_id": nil}),
		"no soy un objeto",
		row(map[string]interface{}{"master_sku_id": "MSKU-2", "description": map[string]interface{}{"x": 1}}),
		row(map[string]interface{}{"master_sku_id": "MSKU-3", "quantity": 1.0}),
	})

	require.Len(t, batch.Rows, 1, "solo la fila válida sobrevive")
	assert.Equal(t, "MSKU-3", batch.Rows[0].MasterSKUID)
	assert.Equal(t, 5, batch.Dropped, "las filas malformadas se cuentan, no abortan el lote")
}

func TestNormalizeRows_CoercionDeCantidad(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want int
	}{
		{"ausente", nil, 0},
		{"float", 7.0, 7},
		{"float truncado", 2.9, 2},
		{"negativo", -4.0, 0},
		{"string numérico", " 12 ", 12},
		{"string inválido", "abc", 0},
		{"json.Number", json.Number("9"), 9},
		{"bool", true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := map[string]interface{}{"master_sku_id": "MSKU-1"}
			if tc.in != nil {
				fields["quantity"] = tc.in
			}
			batch := inventory.NormalizeRows([]interface{}{fields})
			require.Len(t, batch.Rows, 1)
			assert.Equal(t, tc.want, batch.Rows[0].Quantity)
		})
	}
}

func TestNormalizeRows_IDsNumericosComoString(t *testing.T) {
	batch := inventory.NormalizeRows([]interface{}{
		row(map[string]interface{}{
			"master_sku_id":      "MSKU-1",
			"product_id":         42.0,
			"serial_number":      "SN-1",
			"po_number":          "PO-7",
			"serial_assigned_at": "2024-01-05T10:30:00",
		}),
	})

	require.Len(t, batch.Rows, 1)
	r := batch.Rows[0]
	assert.Equal(t, "42", r.ProductID)
	assert.True(t, r.HasSerial())
	require.NotNil(t, r.SerialAssignedAt)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC), *r.SerialAssignedAt)
}

func TestNormalizeLogEntries_OrderIDNuloYFechasInvalidas(t *testing.T) {
	batch := inventory.NormalizeLogEntries([]interface{}{
		map[string]interface{}{"order_id": nil, "event_time": "2024-01-09T08:00:00Z", "sku": "A"},
		map[string]interface{}{"order_id": 1001.0, "event_time": "2024-01-09 08:00:00", "sku": "B"},
		map[string]interface{}{"order_id": "X", "event_time": "ayer"},
		map[string]interface{}{"order_id": "Y"},
	})

	require.Len(t, batch.Entries, 2)
	assert.Equal(t, entity.UnknownOrderID, batch.Entries[0].OrderID)
	assert.Equal(t, "1001", batch.Entries[1].OrderID)
	assert.Equal(t, 2, batch.Dropped)
}

func TestNormalizeBreakdown_PrecioNullableYProductIDRequerido(t *testing.T) {
	batch := inventory.NormalizeBreakdown([]interface{}{
		map[string]interface{}{"product_id": 42.0, "sku": "P-42", "qty": 3.0, "price": json.Number("12.50")},
		map[string]interface{}{"product_id": "43", "sku": "P-43", "qty": 1.0, "price": nil},
		map[string]interface{}{"sku": "sin-id"},
		map[string]interface{}{"product_id": "44", "price": "caro"},
	})

	require.Len(t, batch.Items, 2)
	require.NotNil(t, batch.Items[0].Price)
	assert.True(t, decimal.RequireFromString("12.50").Equal(*batch.Items[0].Price))
	assert.Equal(t, "42", batch.Items[0].ProductID)
	assert.Equal(t, 3, batch.Items[0].Qty)
	assert.Nil(t, batch.Items[1].Price, "price nulo se conserva como nil")
	assert.Equal(t, 2, batch.Dropped)
}

func TestNormalizeUnitYPOBatches(t *testing.T) {
	unit, err := inventory.NormalizeUnit(map[string]interface{}{
		"sku": "P-1", "product_name": "Drive", "received_date": "2024-01-02", "sold": true, "is_damaged": "false",
	})
	require.NoError(t, err)
	assert.True(t, unit.Sold)
	assert.False(t, unit.IsDamaged)

	batches := inventory.NormalizePOBatches([]interface{}{
		map[string]interface{}{"sku": "P-1", "product_name": "Drive", "received_date": "2024-01-02", "serials": []interface{}{"S1", "S2"}},
		"basura",
	})
	require.Len(t, batches.Batches, 1)
	assert.Equal(t, 1, batches.Dropped)
	assert.Equal(t, []string{"S1", "S2"}, batches.Batches[0].Serials)
}

func TestParseTimestamp_Formatos(t *testing.T) {
	for _, s := range []string{
		"2024-01-04T00:00:00Z",
		"2024-01-04T00:00:00.123456",
		"2024-01-04 00:00:00",
		"2024-01-04",
	} {
		ts, ok := inventory.ParseTimestamp(s)
		assert.True(t, ok, s)
		assert.Equal(t, 2024, ts.Year(), s)
	}
	_, ok := inventory.ParseTimestamp(42.0)
	assert.False(t, ok)
}
