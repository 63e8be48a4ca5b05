package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una devolución. Máquina de estados: created -> settled.
// No hay más transiciones: una devolución es la corrección terminal de una
// línea de factura y no puede devolverse ni revertirse.
const (
	ReturnStatusCreated = "created"
	ReturnStatusSettled = "settled"
)

// Métodos de reembolso de una devolución. Exactamente uno se ejecuta por devolución.
const (
	RefundMethodCash            = "CASH"
	RefundMethodCustomerBalance = "CUSTOMER_BALANCE"
)

// SalesReturn representa una devolución de venta (registro inmutable salvo su estado).
type SalesReturn struct {
	ID           string
	Number       string
	InvoiceID    string
	CustomerID   string
	RefundMethod string
	Total        decimal.Decimal
	Status       string
	Date         time.Time
	CreatedAt    time.Time
	CreatedBy    string
}

// SalesReturnItem es una línea devuelta.
type SalesReturnItem struct {
	ID            string
	SalesReturnID string
	ProductID     string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal
}
