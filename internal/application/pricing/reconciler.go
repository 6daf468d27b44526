package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/Inventario-dashboard/internal/domain"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/inventory"
	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
)

// EditPhase estado de edición de precio de una fila del desglose.
type EditPhase string

const (
	PhaseIdle       EditPhase = "idle"
	PhaseFocused    EditPhase = "focused"
	PhaseCommitting EditPhase = "committing"
)

// CommitOutcome resultado de Commit.
type CommitOutcome string

const (
	// OutcomeCommitted: precio enviado y desglose re-leído desde la fuente de verdad.
	OutcomeCommitted CommitOutcome = "committed"
	// OutcomeNoOp: el valor no es un número no negativo; no hubo llamadas de red.
	OutcomeNoOp CommitOutcome = "noop"
)

// BreakdownRow ítem del desglose junto con su estado de edición (solo presentación).
type BreakdownRow struct {
	Item        entity.SKUBreakdownItem
	PendingEdit bool
}

type editKey struct {
	masterSKUID string
	productID   string
}

// newEditKey recorta ambos ids; ok=false si alguno queda vacío.
func newEditKey(masterSKUID, productID string) (editKey, bool) {
	k := editKey{strings.TrimSpace(masterSKUID), strings.TrimSpace(productID)}
	return k, k.masterSKUID != "" && k.productID != ""
}

// Reconciler gobierna el ciclo editar → enviar → re-leer de los precios por producto.
// El caché de desglose solo lo escriben Expand y la re-lectura posterior al commit,
// siempre reemplazando la entrada completa. El estado de edición vive en un mapa paralelo;
// las entidades nunca se mutan.
type Reconciler struct {
	api   ports.BreakdownAPI
	cache ports.BreakdownCache
	log   *logger.Logger

	mu    sync.Mutex
	edits map[editKey]EditPhase
}

// NewReconciler construye el reconciliador.
func NewReconciler(api ports.BreakdownAPI, cache ports.BreakdownCache, log *logger.Logger) *Reconciler {
	if log == nil {
		log = logger.Nop()
	}
	return &Reconciler{
		api:   api,
		cache: cache,
		log:   log.Component("pricing"),
		edits: make(map[editKey]EditPhase),
	}
}

// Expand lee el desglose del master SKU y reemplaza su entrada en caché.
func (r *Reconciler) Expand(ctx context.Context, masterSKUID string) ([]BreakdownRow, error) {
	masterSKUID = strings.TrimSpace(masterSKUID)
	if masterSKUID == "" {
		return nil, domain.ErrInvalidInput
	}
	items, err := r.refetch(ctx, masterSKUID)
	if err != nil {
		return nil, err
	}
	return r.rows(masterSKUID, items), nil
}

// Breakdown devuelve el desglose en caché (sin llamadas de red). ok=false si no se ha expandido.
func (r *Reconciler) Breakdown(ctx context.Context, masterSKUID string) ([]BreakdownRow, bool, error) {
	masterSKUID = strings.TrimSpace(masterSKUID)
	if masterSKUID == "" {
		return nil, false, domain.ErrInvalidInput
	}
	items, ok, err := r.cache.Get(ctx, masterSKUID)
	if err != nil || !ok {
		return nil, ok, err
	}
	return r.rows(masterSKUID, items), true, nil
}

// Phase estado actual de la fila.
func (r *Reconciler) Phase(masterSKUID, productID string) EditPhase {
	k, ok := newEditKey(masterSKUID, productID)
	if !ok {
		return PhaseIdle
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phaseLocked(k)
}

// Focus Idle → Focused al entrar en edición. Durante un commit no cambia nada.
func (r *Reconciler) Focus(masterSKUID, productID string) EditPhase {
	k, ok := newEditKey(masterSKUID, productID)
	if !ok {
		return PhaseIdle
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phaseLocked(k) == PhaseIdle {
		r.edits[k] = PhaseFocused
	}
	return r.phaseLocked(k)
}

// Blur Focused → Idle al salir de la edición sin guardar; el valor local se descarta.
func (r *Reconciler) Blur(masterSKUID, productID string) EditPhase {
	k, ok := newEditKey(masterSKUID, productID)
	if !ok {
		return PhaseIdle
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phaseLocked(k) == PhaseFocused {
		delete(r.edits, k)
	}
	return r.phaseLocked(k)
}

// Commit guarda explícitamente el precio tecleado (rawPrice) para productID.
// Si rawPrice no es un número no negativo devuelve OutcomeNoOp sin llamadas de red.
// Si no: (a) envía el precio, (b) re-lee el desglose del master SKU dueño y (c) reemplaza el caché.
// El valor local nunca se guarda; lo que se muestra después es siempre el resultado de (b).
func (r *Reconciler) Commit(ctx context.Context, masterSKUID, productID, rawPrice string) (CommitOutcome, []BreakdownRow, error) {
	k, valid := newEditKey(masterSKUID, productID)
	if !valid {
		return "", nil, domain.ErrInvalidInput
	}
	masterSKUID, productID = k.masterSKUID, k.productID

	r.mu.Lock()
	if r.phaseLocked(k) == PhaseCommitting {
		r.mu.Unlock()
		return "", nil, fmt.Errorf("commit en curso para %s/%s: %w", masterSKUID, productID, domain.ErrConflict)
	}
	price, ok := ParsePrice(rawPrice)
	if !ok {
		delete(r.edits, k)
		r.mu.Unlock()
		r.log.Debug().Str("master_sku_id", masterSKUID).Str("product_id", productID).Msg("precio inválido, commit omitido")
		return OutcomeNoOp, nil, nil
	}
	r.edits[k] = PhaseCommitting
	r.mu.Unlock()

	if err := r.api.SubmitPrice(ctx, productID, price); err != nil {
		r.release(k)
		r.log.Error().Err(err).Str("product_id", productID).Msg("envío de precio fallido")
		return "", nil, wrapTransport("enviar precio", err)
	}

	items, err := r.refetch(ctx, masterSKUID)
	r.release(k)
	if err != nil {
		return "", nil, err
	}
	r.log.Info().Str("master_sku_id", masterSKUID).Str("product_id", productID).Str("price", price.String()).Msg("precio reconciliado")
	return OutcomeCommitted, r.rows(masterSKUID, items), nil
}

func (r *Reconciler) release(k editKey) {
	r.mu.Lock()
	delete(r.edits, k)
	r.mu.Unlock()
}

func (r *Reconciler) refetch(ctx context.Context, masterSKUID string) ([]entity.SKUBreakdownItem, error) {
	raw, err := r.api.FetchBreakdown(ctx, masterSKUID)
	if err != nil {
		return nil, wrapTransport("leer desglose", err)
	}
	batch := inventory.NormalizeBreakdown(raw)
	if batch.Dropped > 0 {
		r.log.Warn().Str("master_sku_id", masterSKUID).Int("dropped", batch.Dropped).Msg("filas de desglose descartadas")
	}
	if err := r.cache.Set(ctx, masterSKUID, batch.Items); err != nil {
		return nil, fmt.Errorf("guardar desglose en caché: %w", err)
	}
	return batch.Items, nil
}

func (r *Reconciler) rows(masterSKUID string, items []entity.SKUBreakdownItem) []BreakdownRow {
	r.mu.Lock()
	defer r.mu.Unlock()
	pending := make(map[string]bool)
	for k, phase := range r.edits {
		if k.masterSKUID == masterSKUID && phase == PhaseFocused {
			pending[k.productID] = true
		}
	}
	return toRows(items, pending)
}

func (r *Reconciler) phaseLocked(k editKey) EditPhase {
	if p, ok := r.edits[k]; ok {
		return p
	}
	return PhaseIdle
}

func toRows(items []entity.SKUBreakdownItem, pending map[string]bool) []BreakdownRow {
	out := make([]BreakdownRow, 0, len(items))
	for _, it := range items {
		out = append(out, BreakdownRow{Item: it, PendingEdit: pending[it.ProductID]})
	}
	return out
}

// ParsePrice interpreta el valor tecleado; solo acepta números no negativos.
func ParsePrice(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

func wrapTransport(op string, err error) error {
	if errors.Is(err, domain.ErrTransport) || errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrTransport, err)
}
