package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/ledger-pro/internal/application/audit"
	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/application/ledger"
)

// LedgerHandler maneja las consultas del libro financiero y la bitácora.
type LedgerHandler struct {
	ledgerUC *ledger.UseCase
	auditor  *audit.Recorder
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(ledgerUC *ledger.UseCase, auditor *audit.Recorder) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, auditor: auditor}
}

// ListTransactions lista transacciones por rango de fechas (from/to en formato 2006-01-02).
func (h *LedgerHandler) ListTransactions(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, use YYYY-MM-DD"})
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, use YYYY-MM-DD"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	// to inclusivo hasta el final del día
	txs, err := h.ledgerUC.ListByDateRange(c.Context(), from, to.Add(24*time.Hour-time.Nanosecond), page.Limit, page.Offset)
	if err != nil {
		return mapError(c, err)
	}
	out := make([]dto.LedgerTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.NewLedgerTransactionResponse(tx))
	}
	return c.JSON(fiber.Map{"total": len(out), "transactions": out})
}

// ListAuditLog lista la bitácora de auditoría (más reciente primero).
func (h *LedgerHandler) ListAuditLog(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	entries, err := h.auditor.List(page.Limit, page.Offset)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "entries": dto.NewAuditLogResponses(entries)})
}
