package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/ledger-pro/internal/application/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/application/purchases"
	"github.com/tu-usuario/ledger-pro/internal/application/reversal"
	"github.com/tu-usuario/ledger-pro/internal/application/sales"
	"github.com/tu-usuario/ledger-pro/internal/application/stock"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// Compile checks: el runner sirve a todos los orquestadores.
var (
	_ cashbox.TxRunner   = (*TxRunner)(nil)
	_ stock.TxRunner     = (*TxRunner)(nil)
	_ sales.TxRunner     = (*TxRunner)(nil)
	_ purchases.TxRunner = (*TxRunner)(nil)
	_ reversal.TxRunner  = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción con los repos del libro de stock.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewStockMovementRepository(q), NewProductRepository(q))
	})
}

// RunCashbox inicia una transacción con caja diaria y libro financiero.
func (r *TxRunner) RunCashbox(ctx context.Context, fn func(
	cashRepo repository.DailyCashboxRepository,
	ledgerRepo repository.LedgerTransactionRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewDailyCashboxRepository(q), NewLedgerTransactionRepository(q))
	})
}

// RunSale inicia una transacción con todos los repos que toca una venta.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	ledgerRepo repository.LedgerTransactionRepository,
	cashRepo repository.DailyCashboxRepository,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewStockMovementRepository(q),
			NewProductRepository(q),
			NewLedgerTransactionRepository(q),
			NewDailyCashboxRepository(q),
			NewInvoiceRepository(q),
			NewCustomerRepository(q),
		)
	})
}

// RunPurchase inicia una transacción con todos los repos que toca una recepción de compra.
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	ledgerRepo repository.LedgerTransactionRepository,
	cashRepo repository.DailyCashboxRepository,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewStockMovementRepository(q),
			NewProductRepository(q),
			NewLedgerTransactionRepository(q),
			NewDailyCashboxRepository(q),
			NewPurchaseOrderRepository(q),
			NewSupplierRepository(q),
		)
	})
}

// RunReversal inicia una transacción para el motor de reversiones.
func (r *TxRunner) RunReversal(ctx context.Context, fn func(
	cashRepo repository.DailyCashboxRepository,
	ledgerRepo repository.LedgerTransactionRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewDailyCashboxRepository(q), NewLedgerTransactionRepository(q))
	})
}
