package ports

import (
	"context"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// BreakdownCache caché master_sku_id -> desglose. Solo admite reemplazo completo por clave:
// no hay merge parcial ni por campo.
type BreakdownCache interface {
	Get(ctx context.Context, masterSKUID string) ([]entity.SKUBreakdownItem, bool, error)
	Set(ctx context.Context, masterSKUID string, items []entity.SKUBreakdownItem) error
}
