package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro financiero.
const (
	TransactionKindIncome  = "INCOME"
	TransactionKindExpense = "EXPENSE"
)

// ReferenceType identifica el documento origen de una transacción (unión cerrada).
type ReferenceType string

const (
	ReferenceInvoice       ReferenceType = "INVOICE"
	ReferencePurchaseOrder ReferenceType = "PURCHASE_ORDER"
	ReferenceSalesReturn   ReferenceType = "SALES_RETURN"
	ReferenceDebt          ReferenceType = "DEBT"
	ReferenceManual        ReferenceType = "MANUAL"
)

// Valid reporta si el tipo de referencia pertenece a la unión cerrada.
func (t ReferenceType) Valid() bool {
	switch t {
	case ReferenceInvoice, ReferencePurchaseOrder, ReferenceSalesReturn, ReferenceDebt, ReferenceManual:
		return true
	}
	return false
}

// LedgerTransaction representa un hecho financiero (ingreso o egreso) ligado a su documento origen.
// Inmutable una vez creada; solo el motor de reversiones puede eliminarla (delete + re-create,
// nunca edición in-place, para mantener la historia auditable).
type LedgerTransaction struct {
	ID            string
	Kind          string // INCOME o EXPENSE
	Amount        decimal.Decimal // siempre > 0
	Description   string
	ReferenceType ReferenceType
	ReferenceID   string // vacío para MANUAL sin documento
	OccurredAt    time.Time
	RecordedBy    string // UserID
	CreatedAt     time.Time
}
