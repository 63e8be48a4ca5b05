package repository

import "github.com/tu-usuario/ledger-pro/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateItem(item *entity.PurchaseOrderItem) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetItems(orderID string) ([]*entity.PurchaseOrderItem, error)
	Update(order *entity.PurchaseOrder) error
}
