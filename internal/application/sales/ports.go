package sales

import (
	"context"

	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// TxRunner ejecuta el registro de una venta en una sola transacción de BD:
// movimientos de stock, factura, transacción del libro y caja del día juntos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerTransactionRepository,
		cashRepo repository.DailyCashboxRepository,
		invoiceRepo repository.InvoiceRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
