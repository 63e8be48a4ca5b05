package repository

import "github.com/tu-usuario/ledger-pro/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItems(invoiceID string) ([]*entity.InvoiceItem, error)
	// Update reescribe totales, pagado y fecha de actualización (lo usan las devoluciones).
	Update(invoice *entity.Invoice) error
	UpdateItem(item *entity.InvoiceItem) error
}
