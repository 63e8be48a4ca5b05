package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pago de una factura.
const (
	PaymentTypeCash   = "CASH"
	PaymentTypeCredit = "CREDIT"
)

// Invoice representa la cabecera de una factura de venta.
// Las devoluciones reescriben Total y PaidAmount restando lo devuelto;
// ninguno de los dos puede quedar por debajo de cero.
type Invoice struct {
	ID          string
	Number      string
	CustomerID  string
	Date        time.Time
	Total       decimal.Decimal
	PaidAmount  decimal.Decimal
	PaymentType string // CASH o CREDIT
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InvoiceItem es una línea de factura. ReturnedQty acumula lo devuelto;
// nunca puede superar Quantity.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ProductID   string
	Quantity    decimal.Decimal
	ReturnedQty decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// RemainingQty devuelve la cantidad vendida aún no devuelta.
func (i *InvoiceItem) RemainingQty() decimal.Decimal {
	return i.Quantity.Sub(i.ReturnedQty)
}
