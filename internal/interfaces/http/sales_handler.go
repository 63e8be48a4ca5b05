package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/application/sales"
)

// SalesHandler maneja las peticiones HTTP de ventas y devoluciones.
type SalesHandler struct {
	saleUC   *sales.SaleUseCase
	returnUC *sales.ReturnUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(saleUC *sales.SaleUseCase, returnUC *sales.ReturnUseCase) *SalesHandler {
	return &SalesHandler{saleUC: saleUC, returnUC: returnUC}
}

// RegisterSale registra una venta completa (stock + libro + caja + factura).
func (h *SalesHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	items := make([]sales.SaleItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.SaleItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	inv, err := h.saleUC.RegisterSale(c.Context(), sales.SaleInput{
		InvoiceID:   in.InvoiceID,
		Number:      in.Number,
		CustomerID:  in.CustomerID,
		PaymentType: in.PaymentType,
		Origin:      in.Origin,
		Items:       items,
		Date:        in.Date,
		UserID:      in.UserID,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInvoiceResponse(inv))
}

// RegisterReturn procesa una devolución de venta paso a paso.
func (h *SalesHandler) RegisterReturn(c *fiber.Ctx) error {
	var in dto.RegisterReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	items := make([]sales.ReturnItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.ReturnItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	ret, err := h.returnUC.RegisterReturn(c.Context(), sales.ReturnInput{
		InvoiceID:    in.InvoiceID,
		Items:        items,
		RefundMethod: in.RefundMethod,
		Note:         in.Note,
		Date:         in.Date,
		UserID:       in.UserID,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSalesReturnResponse(ret))
}
