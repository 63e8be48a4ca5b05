package repository

import (
	"time"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// LedgerTransactionRepository define el puerto de persistencia del libro financiero.
// No existe operación de update: una transacción se corrige con delete + re-create
// (el delete lo usa exclusivamente el motor de reversiones).
type LedgerTransactionRepository interface {
	Create(tx *entity.LedgerTransaction) error
	GetByID(id string) (*entity.LedgerTransaction, error)
	FindByReference(refType entity.ReferenceType, refID string) ([]*entity.LedgerTransaction, error)
	// ExistsByReference es la llave de idempotencia: kind+referenceType+referenceId
	// evita registrar dos veces el ingreso de la misma factura.
	ExistsByReference(kind string, refType entity.ReferenceType, refID string) (bool, error)
	Delete(id string) error
	ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.LedgerTransaction, error)
}
