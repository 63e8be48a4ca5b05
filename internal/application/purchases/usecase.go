package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/application/audit"
	"github.com/tu-usuario/ledger-pro/internal/application/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/application/ledger"
	"github.com/tu-usuario/ledger-pro/internal/application/stock"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// UseCase registra la recepción de una compra: espejo de la venta con entrada IN
// a bodega, egreso en el libro financiero y, si el pago es en efectivo, resta en
// la caja del día. Una sola transacción de BD.
type UseCase struct {
	txRunner  TxRunner
	stockUC   *stock.UseCase
	cashboxUC *cashbox.UseCase
	ledgerUC  *ledger.UseCase
	auditor   *audit.Recorder
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, stockUC *stock.UseCase, cashboxUC *cashbox.UseCase, ledgerUC *ledger.UseCase, auditor *audit.Recorder) *UseCase {
	return &UseCase{txRunner: txRunner, stockUC: stockUC, cashboxUC: cashboxUC, ledgerUC: ledgerUC, auditor: auditor}
}

// ReceiptItemInput una línea recibida.
type ReceiptItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}

// ReceiptInput entrada para registrar la recepción de una orden de compra.
type ReceiptInput struct {
	OrderID     string // opcional: fijarlo permite reintentos idempotentes
	Number      string
	SupplierID  string
	PaymentType string
	Items       []ReceiptItemInput
	Date        time.Time
	UserID      string
}

// RegisterReceipt registra la recepción completa y devuelve la orden creada.
func (uc *UseCase) RegisterReceipt(ctx context.Context, in ReceiptInput) (*entity.PurchaseOrder, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentType != entity.PaymentTypeCash && in.PaymentType != entity.PaymentTypeCredit {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	orderID := in.OrderID
	if orderID == "" {
		orderID = uuid.New().String()
	}
	number := in.Number
	if number == "" {
		number = fmt.Sprintf("OC-%d", now.Unix())
	}

	var order *entity.PurchaseOrder
	err := uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerTransactionRepository,
		cashRepo repository.DailyCashboxRepository,
		orderRepo repository.PurchaseOrderRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		// 1) Entrada IN a bodega por cada línea, referenciando la orden.
		var total decimal.Decimal
		items := make([]*entity.PurchaseOrderItem, 0, len(in.Items))
		for _, item := range in.Items {
			if _, _, err := uc.stockUC.ApplyInTx(movRepo, productRepo, stock.MovementInput{
				ProductID: item.ProductID,
				Type:      entity.MovementTypeIN,
				Quantity:  item.Quantity,
				Note:      "compra " + number,
				Reference: orderID,
				UserID:    in.UserID,
			}, now); err != nil {
				return err
			}
			subtotal := item.Quantity.Mul(item.UnitCost)
			total = total.Add(subtotal)
			items = append(items, &entity.PurchaseOrderItem{
				ID:              uuid.New().String(),
				PurchaseOrderID: orderID,
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				UnitCost:        item.UnitCost,
				Subtotal:        subtotal,
			})
		}

		// 2) Egreso en el libro financiero, idempotente sobre (EXPENSE, PURCHASE_ORDER, id).
		if _, err := uc.ledgerUC.RecordInTx(ledgerRepo, ledger.RecordInput{
			Kind:          entity.TransactionKindExpense,
			Amount:        total,
			Description:   "compra orden " + number,
			ReferenceType: entity.ReferencePurchaseOrder,
			ReferenceID:   orderID,
			OccurredAt:    date,
			UserID:        in.UserID,
		}, now); err != nil {
			return err
		}

		paid := decimal.Zero
		switch in.PaymentType {
		case entity.PaymentTypeCash:
			// 3a) Efectivo: suma al acumulador de compras de la caja del día.
			paid = total
			if err := uc.cashboxUC.ApplyExpenseInTx(cashRepo, date, total, now); err != nil {
				return err
			}
		case entity.PaymentTypeCredit:
			// 3b) Crédito: crece la deuda con el proveedor; no toca la caja.
			if in.SupplierID == "" {
				return domain.ErrInvalidInput
			}
			supplier, err := supplierRepo.GetByID(in.SupplierID)
			if err != nil {
				return err
			}
			if supplier == nil {
				return domain.ErrNotFound
			}
			if err := supplierRepo.UpdateBalance(supplier.ID, supplier.Balance.Add(total)); err != nil {
				return err
			}
		}

		// 4) Orden y líneas.
		order = &entity.PurchaseOrder{
			ID:          orderID,
			Number:      number,
			SupplierID:  in.SupplierID,
			Date:        date,
			Total:       total,
			PaidAmount:  paid,
			PaymentType: in.PaymentType,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, it := range items {
			if err := orderRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditor.Record(in.UserID, "purchase.receive", "purchase_order", order.ID, "", "compra "+order.Number)
	return order, nil
}
