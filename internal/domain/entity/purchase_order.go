package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder representa una orden de compra a proveedor.
type PurchaseOrder struct {
	ID          string
	Number      string
	SupplierID  string
	Date        time.Time
	Total       decimal.Decimal
	PaidAmount  decimal.Decimal
	PaymentType string // CASH o CREDIT
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PurchaseOrderItem es una línea de orden de compra.
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	ProductID       string
	Quantity        decimal.Decimal
	UnitCost        decimal.Decimal
	Subtotal        decimal.Decimal
}
