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

// Nombres de los pasos de una devolución. Cada paso es seguro de reintentar por
// sí solo; un fallo a mitad de camino se reporta con PartialFailureError nombrando
// los pasos completados, para que un operador o un job compensatorio termine el resto.
const (
	stepCreateReturn   = "registrar-devolucion"
	stepStockReentry   = "reingreso-stock"
	stepInvoiceRewrite = "reescritura-factura"
	stepSettlement     = "liquidacion"
	stepCloseReturn    = "cerrar-devolucion"
)

// ReturnUseCase procesa devoluciones de venta. A diferencia de la venta, la
// devolución cruza autoridades distintas (factura, stock, caja o saldo del
// cliente) y se ejecuta por pasos, no bajo una única transacción.
type ReturnUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	returnRepo   repository.SalesReturnRepository
	customerRepo repository.CustomerRepository
	cashTx       cashbox.TxRunner
	stockUC      *stock.UseCase
	cashboxUC    *cashbox.UseCase
	ledgerUC     *ledger.UseCase
	auditor      *audit.Recorder
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(
	invoiceRepo repository.InvoiceRepository,
	returnRepo repository.SalesReturnRepository,
	customerRepo repository.CustomerRepository,
	cashTx cashbox.TxRunner,
	stockUC *stock.UseCase,
	cashboxUC *cashbox.UseCase,
	ledgerUC *ledger.UseCase,
	auditor *audit.Recorder,
) *ReturnUseCase {
	return &ReturnUseCase{
		invoiceRepo:  invoiceRepo,
		returnRepo:   returnRepo,
		customerRepo: customerRepo,
		cashTx:       cashTx,
		stockUC:      stockUC,
		cashboxUC:    cashboxUC,
		ledgerUC:     ledgerUC,
		auditor:      auditor,
	}
}

// ReturnItemInput una línea devuelta.
type ReturnItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
}

// ReturnInput entrada para registrar una devolución.
// RefundMethod elige exactamente uno de los dos caminos de liquidación:
// reembolso en efectivo o abono al saldo/billetera del cliente. Nunca ambos.
type ReturnInput struct {
	InvoiceID    string
	Items        []ReturnItemInput
	RefundMethod string
	Note         string
	Date         time.Time
	UserID       string
}

// RegisterReturn valida y ejecuta la devolución paso a paso. Toda la validación
// ocurre antes de cualquier mutación; después, un fallo en el paso N se reporta
// como PartialFailureError con los pasos 1..N-1 completados.
func (uc *ReturnUseCase) RegisterReturn(ctx context.Context, in ReturnInput) (*entity.SalesReturn, error) {
	if in.InvoiceID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.RefundMethod != entity.RefundMethodCash && in.RefundMethod != entity.RefundMethodCustomerBalance {
		return nil, domain.ErrInvalidInput
	}

	invoice, err := uc.invoiceRepo.GetByID(in.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	invoiceItems, err := uc.invoiceRepo.GetItems(in.InvoiceID)
	if err != nil {
		return nil, err
	}
	itemsByProduct := make(map[string]*entity.InvoiceItem, len(invoiceItems))
	for _, it := range invoiceItems {
		itemsByProduct[it.ProductID] = it
	}

	// La cantidad devuelta nunca puede superar lo vendido aún no devuelto en esa línea.
	var refundTotal decimal.Decimal
	for _, ri := range in.Items {
		if !ri.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		sold, ok := itemsByProduct[ri.ProductID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		if ri.Quantity.GreaterThan(sold.RemainingQty()) {
			return nil, domain.ErrInvalidInput
		}
		refundTotal = refundTotal.Add(ri.Quantity.Mul(sold.UnitPrice))
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	returnID := uuid.New().String()
	number := fmt.Sprintf("DV-%d", now.Unix())
	var completed []string
	fail := func(step string, err error) error {
		return &domain.PartialFailureError{
			Operation:  "sales-return",
			Completed:  completed,
			FailedStep: step,
			Err:        err,
		}
	}

	// Paso 1: registro inmutable de la devolución (estado created).
	ret := &entity.SalesReturn{
		ID:           returnID,
		Number:       number,
		InvoiceID:    invoice.ID,
		CustomerID:   invoice.CustomerID,
		RefundMethod: in.RefundMethod,
		Total:        refundTotal,
		Status:       entity.ReturnStatusCreated,
		Date:         date,
		CreatedAt:    now,
		CreatedBy:    in.UserID,
	}
	if err := uc.returnRepo.Create(ret); err != nil {
		return nil, fail(stepCreateReturn, err)
	}
	for _, ri := range in.Items {
		sold := itemsByProduct[ri.ProductID]
		item := &entity.SalesReturnItem{
			ID:            uuid.New().String(),
			SalesReturnID: returnID,
			ProductID:     ri.ProductID,
			Quantity:      ri.Quantity,
			UnitPrice:     sold.UnitPrice,
			Subtotal:      ri.Quantity.Mul(sold.UnitPrice),
		}
		if err := uc.returnRepo.CreateItem(item); err != nil {
			return nil, fail(stepCreateReturn, err)
		}
	}
	completed = append(completed, stepCreateReturn)

	// Paso 2: reingreso de stock, un lote IN atómico etiquetado con la devolución.
	lines := make([]stock.BulkLine, 0, len(in.Items))
	for _, ri := range in.Items {
		lines = append(lines, stock.BulkLine{ProductID: ri.ProductID, Quantity: ri.Quantity})
	}
	if _, err := uc.stockUC.ApplyBulk(ctx, entity.MovementTypeIN, "", "devolución "+number, returnID, in.UserID, lines); err != nil {
		return nil, fail(stepStockReentry, err)
	}
	completed = append(completed, stepStockReentry)

	// Paso 3: reescritura de la factura: cantidades devueltas, total y pagado,
	// nunca por debajo de cero.
	for _, ri := range in.Items {
		sold := itemsByProduct[ri.ProductID]
		sold.ReturnedQty = sold.ReturnedQty.Add(ri.Quantity)
		sold.Subtotal = sold.RemainingQty().Mul(sold.UnitPrice)
		if err := uc.invoiceRepo.UpdateItem(sold); err != nil {
			return nil, fail(stepInvoiceRewrite, err)
		}
	}
	invoice.Total = decimal.Max(decimal.Zero, invoice.Total.Sub(refundTotal))
	invoice.PaidAmount = decimal.Max(decimal.Zero, invoice.PaidAmount.Sub(refundTotal))
	invoice.UpdatedAt = now
	if err := uc.invoiceRepo.Update(invoice); err != nil {
		return nil, fail(stepInvoiceRewrite, err)
	}
	completed = append(completed, stepInvoiceRewrite)

	// Paso 4: liquidación por exactamente uno de los dos caminos.
	switch in.RefundMethod {
	case entity.RefundMethodCash:
		if err := uc.settleCash(ctx, ret, date, in.UserID); err != nil {
			return nil, fail(stepSettlement, err)
		}
	case entity.RefundMethodCustomerBalance:
		if err := uc.settleCustomerBalance(ret); err != nil {
			return nil, fail(stepSettlement, err)
		}
	}
	completed = append(completed, stepSettlement)

	// Paso 5: cierre. created -> settled es la única transición; la devolución
	// es la corrección terminal de la factura y no puede revertirse.
	if err := uc.returnRepo.UpdateStatus(returnID, entity.ReturnStatusSettled); err != nil {
		return nil, fail(stepCloseReturn, err)
	}
	ret.Status = entity.ReturnStatusSettled

	uc.auditor.Record(in.UserID, "return.settle", "sales_return", returnID, "", "devolución "+number+" de factura "+invoice.Number)
	return ret, nil
}

// settleCash reembolsa en efectivo: ingreso de ventas negativo en la caja del día
// de la devolución (no del día de la venta original) más un egreso en el libro
// financiero referenciando la devolución. Ambos en una sola transacción de BD.
func (uc *ReturnUseCase) settleCash(ctx context.Context, ret *entity.SalesReturn, date time.Time, userID string) error {
	return uc.cashTx.RunCashbox(ctx, func(cashRepo repository.DailyCashboxRepository, ledgerRepo repository.LedgerTransactionRepository) error {
		now := time.Now()
		if err := uc.cashboxUC.ApplyIncomeInTx(cashRepo, date, ret.Total.Neg(), now); err != nil {
			return err
		}
		_, err := uc.ledgerUC.RecordInTx(ledgerRepo, ledger.RecordInput{
			Kind:          entity.TransactionKindExpense,
			Amount:        ret.Total,
			Description:   "reembolso devolución " + ret.Number,
			ReferenceType: entity.ReferenceSalesReturn,
			ReferenceID:   ret.ID,
			OccurredAt:    date,
			UserID:        userID,
		}, now)
		return err
	})
}

// settleCustomerBalance abona primero contra la deuda pendiente del cliente y
// acredita el remanente a su billetera. Tras el paso, deuda y billetera nunca
// quedan ambas positivas.
func (uc *ReturnUseCase) settleCustomerBalance(ret *entity.SalesReturn) error {
	if ret.CustomerID == "" {
		return domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetForUpdate(ret.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	balance := customer.Balance.Sub(ret.Total)
	credit := customer.CreditBalance
	if balance.LessThan(decimal.Zero) {
		credit = credit.Add(balance.Neg())
		balance = decimal.Zero
	}
	return uc.customerRepo.UpdateBalances(customer.ID, balance, credit)
}
