package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/inventory"
)

func TestSortMasterSKUIDs_OrdenNumerico(t *testing.T) {
	ids := []string{"MSKU-10", "MSKU-2", "MSKU-1"}
	inventory.SortMasterSKUIDs(ids)
	assert.Equal(t, []string{"MSKU-1", "MSKU-2", "MSKU-10"}, ids)
}

func TestSortMasterSKUIDs_PrefijoYMayusculas(t *testing.T) {
	ids := []string{"MSKU-9", "10", "msku-3", "MSKU-B", "MSKU-a"}
	inventory.SortMasterSKUIDs(ids)
	// "msku-3" no lleva el prefijo literal (sensible a mayúsculas) y ordena por la letra m.
	assert.Equal(t, []string{"MSKU-9", "10", "MSKU-a", "MSKU-B", "msku-3"}, ids)
}

func TestWarehouseView_OrdenaYSuprimeCeros(t *testing.T) {
	groups := []entity.MasterSKUGroup{
		{MasterSKUID: "MSKU-10", Quantity: 1},
		{MasterSKUID: "MSKU-2", Quantity: 0},
		{MasterSKUID: "MSKU-1", Quantity: 3},
	}

	view := inventory.WarehouseView(groups)

	assert.Len(t, view, 2)
	assert.Equal(t, "MSKU-1", view[0].MasterSKUID)
	assert.Equal(t, "MSKU-10", view[1].MasterSKUID)
	assert.Equal(t, "10", view[1].DisplayID())
	assert.Equal(t, "MSKU-10", groups[0].MasterSKUID, "la entrada no se reordena")
}
