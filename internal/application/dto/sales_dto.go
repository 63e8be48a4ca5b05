package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// SaleItemRequest una línea de venta. unit_price cero usa el precio de lista.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// RegisterSaleRequest cuerpo de POST /api/sales.
// origin (WAREHOUSE o SHOP) es obligatorio: indica la ubicación que debita la venta.
type RegisterSaleRequest struct {
	InvoiceID   string            `json:"invoice_id"`
	Number      string            `json:"number"`
	CustomerID  string            `json:"customer_id"`
	PaymentType string            `json:"payment_type"`
	Origin      string            `json:"origin"`
	Items       []SaleItemRequest `json:"items"`
	Date        time.Time         `json:"date"`
	UserID      string            `json:"user_id"`
}

// InvoiceResponse respuesta con la factura registrada.
type InvoiceResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	CustomerID  string          `json:"customer_id,omitempty"`
	Date        time.Time       `json:"date"`
	Total       decimal.Decimal `json:"total"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	PaymentType string          `json:"payment_type"`
}

// NewInvoiceResponse convierte la entidad a su DTO.
func NewInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          inv.ID,
		Number:      inv.Number,
		CustomerID:  inv.CustomerID,
		Date:        inv.Date,
		Total:       inv.Total,
		PaidAmount:  inv.PaidAmount,
		PaymentType: inv.PaymentType,
	}
}

// ReturnItemRequest una línea devuelta.
type ReturnItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// RegisterReturnRequest cuerpo de POST /api/returns.
// refund_method: CASH o CUSTOMER_BALANCE (exactamente uno se ejecuta).
type RegisterReturnRequest struct {
	InvoiceID    string              `json:"invoice_id"`
	Items        []ReturnItemRequest `json:"items"`
	RefundMethod string              `json:"refund_method"`
	Note         string              `json:"note"`
	Date         time.Time           `json:"date"`
	UserID       string              `json:"user_id"`
}

// SalesReturnResponse respuesta con la devolución liquidada.
type SalesReturnResponse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	InvoiceID    string          `json:"invoice_id"`
	RefundMethod string          `json:"refund_method"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	Date         time.Time       `json:"date"`
}

// NewSalesReturnResponse convierte la entidad a su DTO.
func NewSalesReturnResponse(ret *entity.SalesReturn) SalesReturnResponse {
	return SalesReturnResponse{
		ID:           ret.ID,
		Number:       ret.Number,
		InvoiceID:    ret.InvoiceID,
		RefundMethod: ret.RefundMethod,
		Total:        ret.Total,
		Status:       ret.Status,
		Date:         ret.Date,
	}
}
