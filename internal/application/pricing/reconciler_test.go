package pricing_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-dashboard/internal/application/pricing"
	"github.com/jhoicas/Inventario-dashboard/internal/domain"
	"github.com/jhoicas/Inventario-dashboard/internal/infrastructure/cache"
	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
)

// fakeBreakdownAPI doble con fuente de verdad configurable y registro de llamadas.
type fakeBreakdownAPI struct {
	breakdown map[string][]interface{}
	submitErr error
	fetchErr  error

	calls     []string
	submitted []decimal.Decimal
	// serverPrice si no es vacío, el servidor responde este precio tras el POST (override/carrera).
	serverPrice string
}

func (f *fakeBreakdownAPI) FetchBreakdown(_ context.Context, masterSKUID string) ([]interface{}, error) {
	f.calls = append(f.calls, "fetch:"+masterSKUID)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.breakdown[masterSKUID], nil
}

func (f *fakeBreakdownAPI) SubmitPrice(_ context.Context, productID string, price decimal.Decimal) error {
	f.calls = append(f.calls, "submit:"+productID)
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, price)
	stored := price.StringFixed(2)
	if f.serverPrice != "" {
		stored = f.serverPrice
	}
	for _, items := range f.breakdown {
		for _, raw := range items {
			m := raw.(map[string]interface{})
			if m["product_id"] == productID {
				m["price"] = json.Number(stored)
			}
		}
	}
	return nil
}

func newFixture() (*fakeBreakdownAPI, *pricing.Reconciler) {
	api := &fakeBreakdownAPI{breakdown: map[string][]interface{}{
		"MSKU-1": {
			map[string]interface{}{"product_id": "42", "sku": "P-42", "qty": json.Number("3"), "price": json.Number("10.00")},
			map[string]interface{}{"product_id": "43", "sku": "P-43", "qty": json.Number("1"), "price": nil},
		},
	}}
	return api, pricing.NewReconciler(api, cache.NewMemoryBreakdownCache(0), logger.Nop())
}

func priceOf(t *testing.T, rows []pricing.BreakdownRow, productID string) *decimal.Decimal {
	t.Helper()
	for _, r := range rows {
		if r.Item.ProductID == productID {
			return r.Item.Price
		}
	}
	require.Failf(t, "producto no encontrado", "%s", productID)
	return nil
}

func TestCommit_RoundTripMuestraValorReleido(t *testing.T) {
	api, rec := newFixture()
	ctx := context.Background()
	_, err := rec.Expand(ctx, "MSKU-1")
	require.NoError(t, err)

	rec.Focus("MSKU-1", "42")
	outcome, rows, err := rec.Commit(ctx, "MSKU-1", "42", "12.50")

	require.NoError(t, err)
	assert.Equal(t, pricing.OutcomeCommitted, outcome)
	assert.Equal(t, []string{"fetch:MSKU-1", "submit:42", "fetch:MSKU-1"}, api.calls, "submit y luego re-lectura")
	assert.True(t, decimal.RequireFromString("12.50").Equal(*priceOf(t, rows, "42")))
	assert.Equal(t, pricing.PhaseIdle, rec.Phase("MSKU-1", "42"))

	cached, ok, err := rec.Breakdown(ctx, "MSKU-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("12.50").Equal(*priceOf(t, cached, "42")))
}

// El servidor gana: si la re-lectura trae 9.99 se muestra 9.99, nunca el valor tecleado.
func TestCommit_OverrideDelServidorGana(t *testing.T) {
	api, rec := newFixture()
	api.serverPrice = "9.99"
	ctx := context.Background()

	_, rows, err := rec.Commit(ctx, "MSKU-1", "42", "12.50")

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("9.99").Equal(*priceOf(t, rows, "42")))
	cached, _, _ := rec.Breakdown(ctx, "MSKU-1")
	assert.True(t, decimal.RequireFromString("9.99").Equal(*priceOf(t, cached, "42")))
}

func TestCommit_ValorInvalidoEsNoOpSinRed(t *testing.T) {
	for _, raw := range []string{"abc", "", "  ", "-1", "12,50"} {
		t.Run(raw, func(t *testing.T) {
			api, rec := newFixture()
			rec.Focus("MSKU-1", "42")

			outcome, rows, err := rec.Commit(context.Background(), "MSKU-1", "42", raw)

			require.NoError(t, err, "un parse fallido no se reporta como error")
			assert.Equal(t, pricing.OutcomeNoOp, outcome)
			assert.Nil(t, rows)
			assert.Empty(t, api.calls, "cero llamadas de red")
			assert.Equal(t, pricing.PhaseIdle, rec.Phase("MSKU-1", "42"))
		})
	}
}

func TestCommit_FalloDeEnvioNoReleeNiTocaCache(t *testing.T) {
	api, rec := newFixture()
	ctx := context.Background()
	_, err := rec.Expand(ctx, "MSKU-1")
	require.NoError(t, err)
	api.calls = nil
	api.submitErr = errors.New("timeout")

	_, _, err = rec.Commit(ctx, "MSKU-1", "42", "15")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, []string{"submit:42"}, api.calls)
	cached, _, _ := rec.Breakdown(ctx, "MSKU-1")
	assert.True(t, decimal.RequireFromString("10").Equal(*priceOf(t, cached, "42")), "el caché conserva el valor de la fuente")
	assert.Equal(t, pricing.PhaseIdle, rec.Phase("MSKU-1", "42"))
}

func TestCommit_FalloDeRelecturaPropaga(t *testing.T) {
	api, rec := newFixture()
	api.fetchErr = domain.NewTransportError("sku-breakdown", 503, nil)

	_, _, err := rec.Commit(context.Background(), "MSKU-1", "42", "15")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	_, ok, _ := rec.Breakdown(context.Background(), "MSKU-1")
	assert.False(t, ok, "sin re-lectura exitosa no hay desglose en caché")
}

func TestFocusBlur_EstadoParaleloALaEntidad(t *testing.T) {
	_, rec := newFixture()
	ctx := context.Background()
	_, err := rec.Expand(ctx, "MSKU-1")
	require.NoError(t, err)

	assert.Equal(t, pricing.PhaseFocused, rec.Focus("MSKU-1", "43"))
	rows, _, _ := rec.Breakdown(ctx, "MSKU-1")
	for _, r := range rows {
		assert.Equal(t, r.Item.ProductID == "43", r.PendingEdit)
	}

	assert.Equal(t, pricing.PhaseIdle, rec.Blur("MSKU-1", "43"))
	rows, _, _ = rec.Breakdown(ctx, "MSKU-1")
	for _, r := range rows {
		assert.False(t, r.PendingEdit)
	}
	assert.Nil(t, priceOf(t, rows, "43"), "precio nulo se conserva")
}

func TestExpand_ReemplazaEntradaCompleta(t *testing.T) {
	api, rec := newFixture()
	ctx := context.Background()
	_, err := rec.Expand(ctx, "MSKU-1")
	require.NoError(t, err)

	api.breakdown["MSKU-1"] = api.breakdown["MSKU-1"][:1]
	rows, err := rec.Expand(ctx, " MSKU-1 ")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	cached, _, _ := rec.Breakdown(ctx, "MSKU-1")
	assert.Len(t, cached, 1)
}

func TestExpand_IDVacio(t *testing.T) {
	_, rec := newFixture()
	_, err := rec.Expand(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReconciler_IDsConEspaciosCompartenClave(t *testing.T) {
	api, rec := newFixture()
	ctx := context.Background()
	_, err := rec.Expand(ctx, " MSKU-1 ")
	require.NoError(t, err)

	rec.Focus(" MSKU-1 ", " 42 ")
	assert.Equal(t, pricing.PhaseFocused, rec.Phase("MSKU-1", "42"))
	rows, ok, err := rec.Breakdown(ctx, "MSKU-1")
	require.NoError(t, err)
	require.True(t, ok)
	for _, r := range rows {
		assert.Equal(t, r.Item.ProductID == "42", r.PendingEdit)
	}

	_, _, err = rec.Commit(ctx, " MSKU-1 ", "42", "12.50")
	require.NoError(t, err)
	assert.Equal(t, []string{"fetch:MSKU-1", "submit:42", "fetch:MSKU-1"}, api.calls)
	cached, _, _ := rec.Breakdown(ctx, "MSKU-1")
	assert.True(t, decimal.RequireFromString("12.50").Equal(*priceOf(t, cached, "42")))
}

func TestCommit_IDVacioEsInvalido(t *testing.T) {
	api, rec := newFixture()
	_, _, err := rec.Commit(context.Background(), " ", "42", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, api.calls)
	assert.Equal(t, pricing.PhaseIdle, rec.Focus("MSKU-1", " "))
}

// blockingSubmitAPI retiene SubmitPrice hasta que el test cierra release.
type blockingSubmitAPI struct {
	*fakeBreakdownAPI
	started chan struct{}
	release chan struct{}
}

func (b *blockingSubmitAPI) SubmitPrice(ctx context.Context, productID string, price decimal.Decimal) error {
	close(b.started)
	<-b.release
	return b.fakeBreakdownAPI.SubmitPrice(ctx, productID, price)
}

func TestCommit_SegundoCommitEnCursoEsConflicto(t *testing.T) {
	base, _ := newFixture()
	api := &blockingSubmitAPI{fakeBreakdownAPI: base, started: make(chan struct{}), release: make(chan struct{})}
	rec := pricing.NewReconciler(api, cache.NewMemoryBreakdownCache(0), logger.Nop())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, _, err := rec.Commit(ctx, "MSKU-1", "42", "12.50")
		done <- err
	}()
	<-api.started

	assert.Equal(t, pricing.PhaseCommitting, rec.Phase("MSKU-1", "42"))
	assert.Equal(t, pricing.PhaseCommitting, rec.Focus("MSKU-1", "42"), "focus no altera un commit en curso")
	assert.Equal(t, pricing.PhaseCommitting, rec.Blur("MSKU-1", "42"))
	_, _, err := rec.Commit(ctx, "MSKU-1", "42", "20")
	assert.ErrorIs(t, err, domain.ErrConflict)

	close(api.release)
	require.NoError(t, <-done)
	assert.Equal(t, pricing.PhaseIdle, rec.Phase("MSKU-1", "42"))
	require.Len(t, base.submitted, 1)
	assert.True(t, decimal.RequireFromString("12.50").Equal(base.submitted[0]))
}

func TestParsePrice(t *testing.T) {
	p, ok := pricing.ParsePrice(" 12.50 ")
	require.True(t, ok)
	assert.Equal(t, "12.5", p.String())

	_, ok = pricing.ParsePrice("0")
	assert.True(t, ok, "cero es un precio válido")
}
