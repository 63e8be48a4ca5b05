package repository

import "github.com/tu-usuario/ledger-pro/internal/domain/entity"

// SalesReturnRepository define el puerto para devoluciones de venta.
// El registro es inmutable salvo su estado (created -> settled).
type SalesReturnRepository interface {
	Create(ret *entity.SalesReturn) error
	CreateItem(item *entity.SalesReturnItem) error
	GetByID(id string) (*entity.SalesReturn, error)
	GetItems(returnID string) ([]*entity.SalesReturnItem, error)
	UpdateStatus(id, status string) error
	ListByInvoice(invoiceID string) ([]*entity.SalesReturn, error)
}
