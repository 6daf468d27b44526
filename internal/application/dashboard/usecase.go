// Package dashboard contiene los casos de uso de las pestañas del dashboard de operaciones:
// bodega (agregado por master SKU), log de despachos y revisión manual.
package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/jhoicas/Inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/inventory"
	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
)

const manualBadgeCap = 5 // a partir de aquí el badge muestra "5+"

// Config parámetros de las proyecciones.
type Config struct {
	WindowDays int                    // ventana del log de despachos (0 = 7)
	Mode       entity.AggregationMode // modo por defecto de la vista de bodega
}

// WarehouseView pestaña de bodega lista para renderizar.
type WarehouseView struct {
	Mode    entity.AggregationMode
	Groups  []entity.MasterSKUGroup // ordenados, sin stock cero
	Dropped int                     // filas descartadas por el normalizador
}

// ManualReview pestaña de revisión manual.
type ManualReview struct {
	Items []entity.ManualCheckItem
	Badge string
}

// UseCase proyecciones del dashboard sobre los feeds de la API de inventario.
//
// El log de despachos se guarda como una foto inmutable; cada refresco la reemplaza
// atómicamente, nunca se mezclan resultados parciales.
type UseCase struct {
	feed ports.InventoryFeed
	cfg  Config
	log  *logger.Logger
	now  func() time.Time

	snapshot atomic.Pointer[entity.LogSnapshot]
	visible  atomic.Bool
}

// NewUseCase construye el caso de uso. La vista arranca como visible.
func NewUseCase(feed ports.InventoryFeed, cfg Config, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = inventory.DefaultLogWindowDays
	}
	if cfg.Mode == "" {
		cfg.Mode = entity.AggregateByQuantitySum
	}
	uc := &UseCase{feed: feed, cfg: cfg, log: log.Component("dashboard"), now: time.Now}
	uc.visible.Store(true)
	return uc
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Warehouse lee las filas, las normaliza, agrega según mode ("" = modo configurado),
// ordena con el comparador numérico y suprime los grupos en cero.
func (uc *UseCase) Warehouse(ctx context.Context, mode entity.AggregationMode) (*WarehouseView, error) {
	if mode == "" {
		mode = uc.cfg.Mode
	}
	raw, err := uc.feed.FetchProductRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer productos agrupados: %w", err)
	}
	batch := inventory.NormalizeRows(raw)
	if batch.Dropped > 0 {
		uc.log.Warn().Int("dropped", batch.Dropped).Int("total", len(raw)).Msg("filas de producto descartadas")
	}
	groups := inventory.Aggregate(batch.Rows, mode)
	return &WarehouseView{
		Mode:    mode,
		Groups:  inventory.WarehouseView(groups),
		Dropped: batch.Dropped,
	}, nil
}

// RefreshLog lee el log de despachos, lo agrupa con la ventana evaluada ahora y reemplaza la foto.
// Si la lectura falla la foto anterior se conserva.
func (uc *UseCase) RefreshLog(ctx context.Context) (*entity.LogSnapshot, error) {
	raw, err := uc.feed.FetchShipmentLog(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer log de despachos: %w", err)
	}
	snap := inventory.BuildLogSnapshot(raw, uc.now(), uc.cfg.WindowDays)
	uc.snapshot.Store(snap)
	if snap.Dropped > 0 {
		uc.log.Warn().Int("dropped", snap.Dropped).Msg("entradas de log descartadas")
	}
	uc.log.Debug().Int("orders", len(snap.Groups)).Time("fetched_at", snap.FetchedAt).Msg("log de despachos actualizado")
	return snap, nil
}

// LogSnapshot última foto del log; nil si todavía no se ha leído.
func (uc *UseCase) LogSnapshot() *entity.LogSnapshot {
	return uc.snapshot.Load()
}

// ShipmentLog devuelve la foto actual, leyéndola si aún no existe.
func (uc *UseCase) ShipmentLog(ctx context.Context) (*entity.LogSnapshot, error) {
	if snap := uc.snapshot.Load(); snap != nil {
		return snap, nil
	}
	return uc.RefreshLog(ctx)
}

// SetVisible registra si la vista está en primer plano.
func (uc *UseCase) SetVisible(v bool) {
	uc.visible.Store(v)
}

// Visible indica si la vista está en primer plano.
func (uc *UseCase) Visible() bool {
	return uc.visible.Load()
}

// RefreshLogIfVisible refresco periódico: se omite mientras la vista no está en primer plano.
func (uc *UseCase) RefreshLogIfVisible(ctx context.Context) (refreshed bool, err error) {
	if !uc.Visible() {
		uc.log.Debug().Msg("vista en segundo plano, refresco omitido")
		return false, nil
	}
	if _, err := uc.RefreshLog(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// ManualReview ítems pendientes de revisión, sin transformar, con la etiqueta del badge.
func (uc *UseCase) ManualReview(ctx context.Context) (*ManualReview, error) {
	raw, err := uc.feed.FetchManualChecks(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer revisión manual: %w", err)
	}
	batch := inventory.NormalizeManualChecks(raw)
	if batch.Dropped > 0 {
		uc.log.Warn().Int("dropped", batch.Dropped).Msg("ítems de revisión manual descartados")
	}
	return &ManualReview{Items: batch.Items, Badge: BadgeLabel(len(batch.Items))}, nil
}

// BadgeLabel "" sin ítems, el conteo hasta 5, "5+" por encima.
func BadgeLabel(n int) string {
	switch {
	case n <= 0:
		return ""
	case n > manualBadgeCap:
		return strconv.Itoa(manualBadgeCap) + "+"
	default:
		return strconv.Itoa(n)
	}
}
