package purchases

import (
	"context"

	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// TxRunner ejecuta la recepción de una compra en una sola transacción de BD.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerTransactionRepository,
		cashRepo repository.DailyCashboxRepository,
		orderRepo repository.PurchaseOrderRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}
