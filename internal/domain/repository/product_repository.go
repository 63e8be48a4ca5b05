package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// ProductRepository define el puerto para productos y sus cantidades por ubicación.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) mientras dura
	// la lectura-modificación de sus cantidades.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateQuantities(id string, warehouseQty, shopQty decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
}
