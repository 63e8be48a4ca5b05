package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/application/purchases"
)

// PurchasesHandler maneja las peticiones HTTP de recepciones de compra.
type PurchasesHandler struct {
	uc *purchases.UseCase
}

// NewPurchasesHandler construye el handler.
func NewPurchasesHandler(uc *purchases.UseCase) *PurchasesHandler {
	return &PurchasesHandler{uc: uc}
}

// RegisterReceipt registra la recepción de una compra (stock + libro + caja + orden).
func (h *PurchasesHandler) RegisterReceipt(c *fiber.Ctx) error {
	var in dto.RegisterReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	items := make([]purchases.ReceiptItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, purchases.ReceiptItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}
	order, err := h.uc.RegisterReceipt(c.Context(), purchases.ReceiptInput{
		OrderID:     in.OrderID,
		Number:      in.Number,
		SupplierID:  in.SupplierID,
		PaymentType: in.PaymentType,
		Items:       items,
		Date:        in.Date,
		UserID:      in.UserID,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseOrderResponse(order))
}
