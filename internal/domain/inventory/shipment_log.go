package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// DefaultLogWindowDays ventana de retención por defecto del log de despachos.
const DefaultLogWindowDays = 7

// GroupRecentLogs agrupa por orden las entradas con event_time >= now - windowDays (días de calendario).
// La clave es el OrderID tal cual; NormalizeLogEntries ya llevó los ausentes a "unknown", así que
// todos comparten ese grupo. Dentro de cada grupo se conserva el orden de
// llegada; LatestEventTime es el máximo. Sin entradas en la ventana devuelve un mapa vacío.
func GroupRecentLogs(entries []entity.ShipmentLogEntry, now time.Time, windowDays int) map[string]*entity.OrderLogGroup {
	if windowDays <= 0 {
		windowDays = DefaultLogWindowDays
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	groups := make(map[string]*entity.OrderLogGroup)
	for _, e := range entries {
		if e.EventTime.Before(cutoff) {
			continue
		}
		id := e.OrderID
		g, ok := groups[id]
		if !ok {
			g = &entity.OrderLogGroup{OrderID: id}
			groups[id] = g
		}
		g.Entries = append(g.Entries, e)
		if e.EventTime.After(g.LatestEventTime) {
			g.LatestEventTime = e.EventTime
		}
	}
	return groups
}

// BuildLogSnapshot normaliza el payload crudo y lo agrupa con la ventana evaluada en now.
func BuildLogSnapshot(raw []interface{}, now time.Time, windowDays int) *entity.LogSnapshot {
	if windowDays <= 0 {
		windowDays = DefaultLogWindowDays
	}
	batch := NormalizeLogEntries(raw)
	return &entity.LogSnapshot{
		Groups:     GroupRecentLogs(batch.Entries, now, windowDays),
		FetchedAt:  now,
		WindowDays: windowDays,
		Dropped:    batch.Dropped,
	}
}

// SortGroups ordena los grupos para mostrar: evento más reciente primero, empate por order_id.
func SortGroups(groups map[string]*entity.OrderLogGroup) []*entity.OrderLogGroup {
	out := make([]*entity.OrderLogGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LatestEventTime.Equal(out[j].LatestEventTime) {
			return out[i].LatestEventTime.After(out[j].LatestEventTime)
		}
		return out[i].OrderID < out[j].OrderID
	})
	return out
}
