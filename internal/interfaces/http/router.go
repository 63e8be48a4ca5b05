package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/ledger-pro/internal/application/audit"
	"github.com/tu-usuario/ledger-pro/internal/application/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/application/ledger"
	"github.com/tu-usuario/ledger-pro/internal/application/purchases"
	"github.com/tu-usuario/ledger-pro/internal/application/reversal"
	"github.com/tu-usuario/ledger-pro/internal/application/sales"
	"github.com/tu-usuario/ledger-pro/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SaleUC     *sales.SaleUseCase
	ReturnUC   *sales.ReturnUseCase
	PurchaseUC *purchases.UseCase
	StockUC    *stock.UseCase
	CashboxUC  *cashbox.UseCase
	ReversalUC *reversal.UseCase
	LedgerUC   *ledger.UseCase
	Auditor    *audit.Recorder
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ventas y devoluciones
	salesHandler := NewSalesHandler(deps.SaleUC, deps.ReturnUC)
	api.Post("/sales", salesHandler.RegisterSale)
	api.Post("/returns", salesHandler.RegisterReturn)

	// Compras
	purchasesHandler := NewPurchasesHandler(deps.PurchaseUC)
	api.Post("/purchases", purchasesHandler.RegisterReceipt)

	// Libro de stock
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/movements", stockHandler.ApplyMovement)
	stockGroup.Post("/movements/bulk", stockHandler.ApplyBulk)
	stockGroup.Post("/transfer", stockHandler.Transfer)
	stockGroup.Post("/adjust", stockHandler.Adjust)
	stockGroup.Get("/movements/:productId", stockHandler.ListByProduct)
	stockGroup.Get("/verify/:productId", stockHandler.Verify)

	// Caja diaria
	cashboxGroup := api.Group("/cashbox")
	cashboxHandler := NewCashboxHandler(deps.CashboxUC)
	cashboxGroup.Post("/manual-income", cashboxHandler.ManualIncome)
	cashboxGroup.Post("/manual-expense", cashboxHandler.ManualExpense)
	cashboxGroup.Post("/reconcile", cashboxHandler.Reconcile)
	cashboxGroup.Get("/current-balance", cashboxHandler.CurrentBalance)
	cashboxGroup.Get("/:date", cashboxHandler.GetByDate)

	// Motor de reversiones
	reversalGroup := api.Group("/reversal")
	reversalHandler := NewReversalHandler(deps.ReversalUC)
	reversalGroup.Post("/undo/:id", reversalHandler.Undo)
	reversalGroup.Post("/by-reference", reversalHandler.ByReference)

	// Libro financiero y bitácora
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.Auditor)
	api.Get("/ledger/transactions", ledgerHandler.ListTransactions)
	api.Get("/audit-log", ledgerHandler.ListAuditLog)
}
