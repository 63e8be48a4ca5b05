package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// ReceiptItemRequest una línea recibida.
type ReceiptItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// RegisterReceiptRequest cuerpo de POST /api/purchases.
type RegisterReceiptRequest struct {
	OrderID     string               `json:"order_id"`
	Number      string               `json:"number"`
	SupplierID  string               `json:"supplier_id"`
	PaymentType string               `json:"payment_type"`
	Items       []ReceiptItemRequest `json:"items"`
	Date        time.Time            `json:"date"`
	UserID      string               `json:"user_id"`
}

// PurchaseOrderResponse respuesta con la orden recibida.
type PurchaseOrderResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	Date        time.Time       `json:"date"`
	Total       decimal.Decimal `json:"total"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	PaymentType string          `json:"payment_type"`
}

// NewPurchaseOrderResponse convierte la entidad a su DTO.
func NewPurchaseOrderResponse(o *entity.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:          o.ID,
		Number:      o.Number,
		SupplierID:  o.SupplierID,
		Date:        o.Date,
		Total:       o.Total,
		PaidAmount:  o.PaidAmount,
		PaymentType: o.PaymentType,
	}
}
