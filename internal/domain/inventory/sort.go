package inventory

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// MasterSKUComparator compara ids de master SKU sin el prefijo "MSKU-", con orden numérico
// ("9" < "10") y sin distinguir mayúsculas. En empate decide el id crudo.
// No es seguro para uso concurrente (collate.Collator guarda estado); crear uno por ordenamiento.
type MasterSKUComparator struct {
	col *collate.Collator
}

// NewMasterSKUComparator construye el comparador.
func NewMasterSKUComparator() *MasterSKUComparator {
	return &MasterSKUComparator{
		col: collate.New(language.Und, collate.Numeric, collate.IgnoreCase, collate.IgnoreDiacritics),
	}
}

// Compare devuelve -1, 0 o 1.
func (c *MasterSKUComparator) Compare(a, b string) int {
	if r := c.col.CompareString(displayKey(a), displayKey(b)); r != 0 {
		return r
	}
	return strings.Compare(a, b)
}

func displayKey(id string) string {
	return strings.TrimPrefix(id, entity.MasterSKUPrefix)
}

// SortMasterSKUIDs ordena ids en el lugar con el comparador numérico.
func SortMasterSKUIDs(ids []string) {
	cmp := NewMasterSKUComparator()
	sort.SliceStable(ids, func(i, j int) bool { return cmp.Compare(ids[i], ids[j]) < 0 })
}

// SortForDisplay devuelve una copia de los grupos ordenada por master SKU.
func SortForDisplay(groups []entity.MasterSKUGroup) []entity.MasterSKUGroup {
	out := make([]entity.MasterSKUGroup, len(groups))
	copy(out, groups)
	cmp := NewMasterSKUComparator()
	sort.SliceStable(out, func(i, j int) bool {
		return cmp.Compare(out[i].MasterSKUID, out[j].MasterSKUID) < 0
	})
	return out
}

// WarehouseView proyección que renderiza la pestaña de bodega: ordena y suprime stock cero.
func WarehouseView(groups []entity.MasterSKUGroup) []entity.MasterSKUGroup {
	return FilterInStock(SortForDisplay(groups))
}
