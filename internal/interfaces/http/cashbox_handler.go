package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/ledger-pro/internal/application/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/application/dto"
)

// CashboxHandler maneja las peticiones HTTP de la caja diaria.
type CashboxHandler struct {
	uc *cashbox.UseCase
}

// NewCashboxHandler construye el handler.
func NewCashboxHandler(uc *cashbox.UseCase) *CashboxHandler {
	return &CashboxHandler{uc: uc}
}

// ManualIncome agrega un ingreso manual itemizado con su transacción pareada.
func (h *CashboxHandler) ManualIncome(c *fiber.Ctx) error {
	var in dto.ManualEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	tx, err := h.uc.AddManualIncome(c.Context(), orNow(in.Date), in.Amount, in.Reason, in.UserID)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLedgerTransactionResponse(tx))
}

// ManualExpense agrega un egreso manual itemizado (con categoría) y su transacción pareada.
func (h *CashboxHandler) ManualExpense(c *fiber.Ctx) error {
	var in dto.ManualEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	tx, err := h.uc.AddManualExpense(c.Context(), orNow(in.Date), in.Amount, in.Reason, in.Category, in.UserID)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLedgerTransactionResponse(tx))
}

// Reconcile concilia (cierra) la caja de un día contra el saldo contado.
func (h *CashboxHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	box, err := h.uc.Reconcile(c.Context(), orNow(in.Date), in.ActualClosing, in.UserID, in.Notes)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.NewCashboxResponse(box))
}

// CurrentBalance devuelve el dinero en mano según el último día registrado.
func (h *CashboxHandler) CurrentBalance(c *fiber.Ctx) error {
	balance, err := h.uc.CurrentBalance(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"current_balance": balance})
}

// GetByDate devuelve la caja de un día (fecha en formato 2006-01-02).
func (h *CashboxHandler) GetByDate(c *fiber.Ctx) error {
	date, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, use YYYY-MM-DD"})
	}
	box, err := h.uc.GetByDate(c.Context(), date)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.NewCashboxResponse(box))
}

// orNow devuelve now si la fecha viene vacía en el request.
func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
