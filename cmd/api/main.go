package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/ledger-pro/internal/application/audit"
	"github.com/tu-usuario/ledger-pro/internal/application/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/application/ledger"
	"github.com/tu-usuario/ledger-pro/internal/application/purchases"
	"github.com/tu-usuario/ledger-pro/internal/application/reversal"
	"github.com/tu-usuario/ledger-pro/internal/application/sales"
	"github.com/tu-usuario/ledger-pro/internal/application/stock"
	"github.com/tu-usuario/ledger-pro/internal/infrastructure/notify"
	"github.com/tu-usuario/ledger-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/ledger-pro/internal/interfaces/http"
	"github.com/tu-usuario/ledger-pro/pkg/config"
	"github.com/tu-usuario/ledger-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas fuera de transacción)
	ledgerRepo := postgres.NewLedgerTransactionRepository(pool)
	cashRepo := postgres.NewDailyCashboxRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	returnRepo := postgres.NewSalesReturnRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	auditor := audit.NewRecorder(auditRepo, log)
	ledgerUC := ledger.NewUseCase(ledgerRepo)
	cashboxUC := cashbox.NewUseCase(txRunner, cashRepo, ledgerUC, auditor)
	notifier := notify.NewLogNotifier(log)
	stockUC := stock.NewUseCase(txRunner, movRepo, productRepo, notifier, auditor)
	saleUC := sales.NewSaleUseCase(txRunner, stockUC, cashboxUC, ledgerUC, auditor)
	returnUC := sales.NewReturnUseCase(invoiceRepo, returnRepo, customerRepo, txRunner, stockUC, cashboxUC, ledgerUC, auditor)
	purchaseUC := purchases.NewUseCase(txRunner, stockUC, cashboxUC, ledgerUC, auditor)
	reversalUC := reversal.NewUseCase(ledgerRepo, txRunner, cashboxUC, auditor)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SaleUC:     saleUC,
		ReturnUC:   returnUC,
		PurchaseUC: purchaseUC,
		StockUC:    stockUC,
		CashboxUC:  cashboxUC,
		ReversalUC: reversalUC,
		LedgerUC:   ledgerUC,
		Auditor:    auditor,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
}
