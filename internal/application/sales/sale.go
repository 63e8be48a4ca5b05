package sales

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

// SaleUseCase registra una venta: descuenta stock, crea la factura, registra el
// ingreso en el libro financiero y, si el pago es en efectivo, suma a la caja del
// día. Todo en una sola transacción de BD (Commit o Rollback completos).
type SaleUseCase struct {
	txRunner  TxRunner
	stockUC   *stock.UseCase
	cashboxUC *cashbox.UseCase
	ledgerUC  *ledger.UseCase
	auditor   *audit.Recorder
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, stockUC *stock.UseCase, cashboxUC *cashbox.UseCase, ledgerUC *ledger.UseCase, auditor *audit.Recorder) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, stockUC: stockUC, cashboxUC: cashboxUC, ledgerUC: ledgerUC, auditor: auditor}
}

// SaleItemInput una línea de venta. UnitPrice cero usa el precio del producto.
type SaleItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// SaleInput entrada para registrar una venta.
// Origin es la ubicación que debita la venta (WAREHOUSE o SHOP): parámetro
// explícito obligatorio, nunca un default inferido.
type SaleInput struct {
	InvoiceID   string // opcional: fijarlo permite reintentos idempotentes
	Number      string
	CustomerID  string
	PaymentType string
	Origin      string
	Items       []SaleItemInput
	Date        time.Time
	UserID      string
}

// RegisterSale registra la venta completa y devuelve la factura creada.
func (uc *SaleUseCase) RegisterSale(ctx context.Context, in SaleInput) (*entity.Invoice, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentType != entity.PaymentTypeCash && in.PaymentType != entity.PaymentTypeCredit {
		return nil, domain.ErrInvalidInput
	}
	if in.Origin != entity.LocationWarehouse && in.Origin != entity.LocationShop {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	invoiceID := in.InvoiceID
	if invoiceID == "" {
		invoiceID = uuid.New().String()
	}
	number := in.Number
	if number == "" {
		number = fmt.Sprintf("FV-%d", now.Unix())
	}

	var inv *entity.Invoice
	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerTransactionRepository,
		cashRepo repository.DailyCashboxRepository,
		invoiceRepo repository.InvoiceRepository,
		customerRepo repository.CustomerRepository,
	) error {
		// 1) Por cada línea, salida SALE desde la ubicación elegida; precio cero
		// usa el precio de lista del producto. Sin stock => rollback completo.
		var total decimal.Decimal
		items := make([]*entity.InvoiceItem, 0, len(in.Items))
		for _, item := range in.Items {
			_, product, err := uc.stockUC.ApplyInTx(movRepo, productRepo, stock.MovementInput{
				ProductID: item.ProductID,
				Type:      entity.MovementTypeSALE,
				Origin:    in.Origin,
				Quantity:  item.Quantity,
				Note:      "venta " + number,
				Reference: invoiceID,
				UserID:    in.UserID,
			}, now)
			if err != nil {
				return err
			}
			unitPrice := item.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = product.Price
			}
			subtotal := item.Quantity.Mul(unitPrice)
			total = total.Add(subtotal)
			items = append(items, &entity.InvoiceItem{
				ID:        uuid.New().String(),
				InvoiceID: invoiceID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				Subtotal:  subtotal,
			})
		}

		// 2) Ingreso en el libro financiero, referenciando la factura.
		// La llave de idempotencia (INCOME, INVOICE, id) evita doble registro en reintentos.
		if _, err := uc.ledgerUC.RecordInTx(ledgerRepo, ledger.RecordInput{
			Kind:          entity.TransactionKindIncome,
			Amount:        total,
			Description:   "venta factura " + number,
			ReferenceType: entity.ReferenceInvoice,
			ReferenceID:   invoiceID,
			OccurredAt:    date,
			UserID:        in.UserID,
		}, now); err != nil {
			return err
		}

		paid := decimal.Zero
		switch in.PaymentType {
		case entity.PaymentTypeCash:
			// 3a) Efectivo: suma al acumulador de ventas de la caja del día.
			paid = total
			if err := uc.cashboxUC.ApplyIncomeInTx(cashRepo, date, total, now); err != nil {
				return err
			}
		case entity.PaymentTypeCredit:
			// 3b) Crédito: la deuda del cliente crece; no toca la caja.
			if in.CustomerID == "" {
				return domain.ErrInvalidInput
			}
			customer, err := customerRepo.GetForUpdate(in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return domain.ErrNotFound
			}
			if err := customerRepo.UpdateBalances(customer.ID, customer.Balance.Add(total), customer.CreditBalance); err != nil {
				return err
			}
		}

		// 4) Factura y líneas.
		inv = &entity.Invoice{
			ID:          invoiceID,
			Number:      number,
			CustomerID:  in.CustomerID,
			Date:        date,
			Total:       total,
			PaidAmount:  paid,
			PaymentType: in.PaymentType,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, it := range items {
			if err := invoiceRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditor.Record(in.UserID, "sale.register", "invoice", inv.ID, "", "venta "+inv.Number)
	return inv, nil
}
