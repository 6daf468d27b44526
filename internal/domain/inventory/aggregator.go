package inventory

import "github.com/jhoicas/Inventario-dashboard/internal/domain/entity"

// Aggregate agrupa las filas por master SKU en una sola pasada.
// ByQuantitySum suma quantity; BySerial cuenta las filas serializadas y las anida bajo su producto.
// La primera descripción vista gana. El resultado es total: incluye grupos con cantidad 0
// (el filtrado de stock cero es responsabilidad de la vista, ver FilterInStock).
func Aggregate(rows []entity.InventoryRow, mode entity.AggregationMode) []entity.MasterSKUGroup {
	type acc struct {
		group    entity.MasterSKUGroup
		products map[string]int // product_id -> índice en group.Products
	}
	index := make(map[string]int)
	accs := make([]*acc, 0)

	for _, row := range rows {
		i, ok := index[row.MasterSKUID]
		if !ok {
			i = len(accs)
			index[row.MasterSKUID] = i
			accs = append(accs, &acc{
				group:    entity.MasterSKUGroup{MasterSKUID: row.MasterSKUID, Description: row.Description},
				products: make(map[string]int),
			})
		}
		a := accs[i]

		p, ok := a.products[row.ProductID]
		if !ok {
			p = len(a.group.Products)
			a.products[row.ProductID] = p
			a.group.Products = append(a.group.Products, entity.ProductRollup{
				ProductID:   row.ProductID,
				ProductName: row.ProductName,
				PartNumber:  row.PartNumber,
			})
		}
		product := &a.group.Products[p]

		switch mode {
		case entity.AggregateBySerial:
			if !row.HasSerial() {
				continue
			}
			product.Serials = append(product.Serials, entity.SerialUnit{
				SerialNumber: row.SerialNumber,
				PONumber:     row.PONumber,
				ScannedAt:    row.SerialAssignedAt,
			})
			product.Quantity++
			a.group.Quantity++
		default:
			product.Quantity += row.Quantity
			a.group.Quantity += row.Quantity
		}
	}

	out := make([]entity.MasterSKUGroup, 0, len(accs))
	for _, a := range accs {
		out = append(out, a.group)
	}
	return out
}

// FilterInStock devuelve solo los grupos con cantidad > 0 y, dentro de cada uno,
// solo los productos con cantidad > 0. No modifica la entrada.
func FilterInStock(groups []entity.MasterSKUGroup) []entity.MasterSKUGroup {
	out := make([]entity.MasterSKUGroup, 0, len(groups))
	for _, g := range groups {
		if g.Quantity <= 0 {
			continue
		}
		products := make([]entity.ProductRollup, 0, len(g.Products))
		for _, p := range g.Products {
			if p.Quantity > 0 {
				products = append(products, p)
			}
		}
		g.Products = products
		out = append(out, g)
	}
	return out
}
