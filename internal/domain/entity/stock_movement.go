package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN                  = "IN"                    // entrada a bodega
	MovementTypeOUT                 = "OUT"                   // salida (bodega o tienda según Origin)
	MovementTypeSALE                = "SALE"                  // venta (bodega o tienda según Origin)
	MovementTypeTransferToShop      = "TRANSFER_TO_SHOP"      // bodega -> tienda
	MovementTypeTransferToWarehouse = "TRANSFER_TO_WAREHOUSE" // tienda -> bodega
	MovementTypeADJUST              = "ADJUST"                // conteo físico: fija valores absolutos
)

// Ubicaciones de stock por producto.
const (
	LocationWarehouse = "WAREHOUSE"
	LocationShop      = "SHOP"
)

// StockMovement es un hecho de inventario firmado, ligado a un producto y una causa.
// Append-only: nunca se edita. Quantity es el delta firmado sobre el total del
// producto (para ADJUST, la diferencia respecto del total previo, no un absoluto).
// WarehouseQty/ShopQty son la foto del producto DESPUÉS de aplicar el movimiento;
// repetir los movimientos en orden desde (0,0) reproduce el estado actual.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Origin    string // ubicación que debita OUT/SALE (WAREHOUSE o SHOP); vacío en otros tipos
	Quantity  decimal.Decimal
	Note      string
	Reference string // número de factura, orden o devolución que causó el movimiento
	Date      time.Time
	CreatedAt time.Time
	CreatedBy string

	// Foto post-mutación del producto.
	WarehouseQty decimal.Decimal
	ShopQty      decimal.Decimal
}
