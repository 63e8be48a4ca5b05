package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto con stock en dos ubicaciones físicas:
// bodega (warehouse) y tienda (shop). Ambas cantidades son >= 0 en todo momento;
// los orquestadores rechazan cualquier movimiento que las dejaría en negativo.
type Product struct {
	ID           string
	SKU          string
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta
	Cost         decimal.Decimal // costo unitario de compra
	WarehouseQty decimal.Decimal
	ShopQty      decimal.Decimal
	ReorderLevel decimal.Decimal // umbral de stock bajo para notificaciones
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalQty devuelve la cantidad total (bodega + tienda).
func (p *Product) TotalQty() decimal.Decimal {
	return p.WarehouseQty.Add(p.ShopQty)
}
