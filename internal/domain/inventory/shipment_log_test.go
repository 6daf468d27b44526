package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/inventory"
)

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func TestGroupRecentLogs_Ventana7Dias(t *testing.T) {
	entries := []entity.ShipmentLogEntry{
		{OrderID: "A", EventTime: day(1), SKU: "viejo"},  // 9 días antes
		{OrderID: "A", EventTime: day(4), SKU: "nuevo"},  // 6 días antes
		{OrderID: "B", EventTime: day(3), SKU: "límite"}, // exactamente 7 días antes
	}

	groups := inventory.GroupRecentLogs(entries, day(10), 7)

	require.Contains(t, groups, "A")
	require.Len(t, groups["A"].Entries, 1)
	assert.Equal(t, "nuevo", groups["A"].Entries[0].SKU)
	assert.Contains(t, groups, "B", "el borde de la ventana es inclusivo")
}

func TestGroupRecentLogs_SinOrderIDVaAUnknown(t *testing.T) {
	batch := inventory.NormalizeLogEntries([]interface{}{
		map[string]interface{}{"event_time": "2024-01-08T00:00:00Z", "sku": "1"},
		map[string]interface{}{"order_id": "Z", "event_time": "2024-01-08T00:00:00Z", "sku": "2"},
		map[string]interface{}{"order_id": nil, "event_time": "2024-01-09T00:00:00Z", "sku": "3"},
		map[string]interface{}{"order_id": "", "event_time": "2024-01-09T00:00:00Z", "sku": "4"},
	})

	groups := inventory.GroupRecentLogs(batch.Entries, day(10), 7)

	require.Contains(t, groups, entity.UnknownOrderID)
	assert.Len(t, groups, 3)
	assert.Len(t, groups[entity.UnknownOrderID].Entries, 2, "ausente y nulo comparten grupo")
	require.Contains(t, groups, "", "un order_id vacío explícito es su propia orden")
	assert.Equal(t, "4", groups[""].Entries[0].SKU)
}

func TestGroupRecentLogs_OrdenDeLlegadaYUltimoEvento(t *testing.T) {
	entries := []entity.ShipmentLogEntry{
		{OrderID: "A", EventTime: day(9), SKU: "primero"},
		{OrderID: "A", EventTime: day(5), SKU: "segundo"},
		{OrderID: "A", EventTime: day(7), SKU: "tercero"},
	}

	g := inventory.GroupRecentLogs(entries, day(10), 7)["A"]

	require.NotNil(t, g)
	assert.Equal(t, []string{"primero", "segundo", "tercero"},
		[]string{g.Entries[0].SKU, g.Entries[1].SKU, g.Entries[2].SKU}, "no se reordena por fecha")
	assert.Equal(t, day(9), g.LatestEventTime)
}

func TestGroupRecentLogs_VacioSinEntradasEnVentana(t *testing.T) {
	groups := inventory.GroupRecentLogs([]entity.ShipmentLogEntry{{OrderID: "A", EventTime: day(1)}}, day(10), 0)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestBuildLogSnapshotYSortGroups(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"order_id": "A", "event_time": "2024-01-06T00:00:00Z"},
		map[string]interface{}{"order_id": "B", "event_time": "2024-01-09T00:00:00Z"},
		map[string]interface{}{"order_id": "C", "event_time": "no es fecha"},
	}

	snap := inventory.BuildLogSnapshot(raw, day(10), 0)

	assert.Equal(t, inventory.DefaultLogWindowDays, snap.WindowDays)
	assert.Equal(t, 1, snap.Dropped)
	assert.Equal(t, day(10), snap.FetchedAt)
	sorted := inventory.SortGroups(snap.Groups)
	require.Len(t, sorted, 2)
	assert.Equal(t, "B", sorted[0].OrderID, "el más reciente primero")
}
