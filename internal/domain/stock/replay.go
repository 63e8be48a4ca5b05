package stock

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// Replay reconstruye (warehouseQty, shopQty) de un producto aplicando sus
// movimientos en orden desde (0,0). Invariante del libro de stock: el resultado
// debe coincidir con la foto del último movimiento y con el producto actual.
//
// ADJUST es una corrección autoritativa: su delta registrado es sobre el total,
// así que la repetición salta directamente a la foto que capturó.
func Replay(movements []*entity.StockMovement) (warehouseQty, shopQty decimal.Decimal) {
	warehouseQty = decimal.Zero
	shopQty = decimal.Zero
	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypeIN:
			warehouseQty = warehouseQty.Add(m.Quantity)
		case entity.MovementTypeOUT, entity.MovementTypeSALE:
			// Quantity se guarda negativa en salidas; debita la ubicación de origen.
			if m.Origin == entity.LocationShop {
				shopQty = shopQty.Add(m.Quantity)
			} else {
				warehouseQty = warehouseQty.Add(m.Quantity)
			}
		case entity.MovementTypeTransferToShop:
			warehouseQty = warehouseQty.Sub(m.Quantity)
			shopQty = shopQty.Add(m.Quantity)
		case entity.MovementTypeTransferToWarehouse:
			shopQty = shopQty.Sub(m.Quantity)
			warehouseQty = warehouseQty.Add(m.Quantity)
		case entity.MovementTypeADJUST:
			warehouseQty = m.WarehouseQty
			shopQty = m.ShopQty
		}
	}
	return warehouseQty, shopQty
}
