package purchases_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ledger-pro/internal/application/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/application/ledger"
	"github.com/tu-usuario/ledger-pro/internal/application/purchases"
	"github.com/tu-usuario/ledger-pro/internal/application/stock"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

var receiptDay = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

func newPurchaseUC(t *testing.T) (*purchases.UseCase, *memory.Store, *cashbox.UseCase, *ledger.UseCase) {
	t.Helper()
	store := memory.NewStore()
	ledgerUC := ledger.NewUseCase(store.Ledger())
	cashboxUC := cashbox.NewUseCase(store, store.Cashboxes(), ledgerUC, nil)
	stockUC := stock.NewUseCase(store, store.StockMovements(), store.Products(), nil, nil)
	uc := purchases.NewUseCase(store, stockUC, cashboxUC, ledgerUC, nil)
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "p1", SKU: "SKU-1", Name: "Producto", Cost: d("40"), WarehouseQty: d("2"),
	}))
	return uc, store, cashboxUC, ledgerUC
}

func TestRecepcionEfectivo(t *testing.T) {
	uc, store, cashboxUC, ledgerUC := newPurchaseUC(t)
	ctx := context.Background()

	order, err := uc.RegisterReceipt(ctx, purchases.ReceiptInput{
		Number:      "OC-100",
		PaymentType: entity.PaymentTypeCash,
		Items: []purchases.ReceiptItemInput{
			{ProductID: "p1", Quantity: d("5"), UnitCost: d("40")},
		},
		Date:   receiptDay,
		UserID: "user-1",
	})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(d("200")))
	assert.True(t, order.PaidAmount.Equal(d("200")))

	// Entrada IN a bodega.
	p, _ := store.Products().GetByID("p1")
	assert.True(t, p.WarehouseQty.Equal(d("7")))

	// Egreso en el libro y en la caja del día.
	txs, err := ledgerUC.FindByReference(ctx, entity.ReferencePurchaseOrder, order.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionKindExpense, txs[0].Kind)
	box, err := cashboxUC.GetByDate(ctx, receiptDay)
	require.NoError(t, err)
	assert.True(t, box.PurchaseExpenses.Equal(d("200")))
}

func TestRecepcionCredito(t *testing.T) {
	uc, store, cashboxUC, _ := newPurchaseUC(t)
	require.NoError(t, store.Suppliers().Create(&entity.Supplier{ID: "s1", Name: "Proveedor"}))
	ctx := context.Background()

	order, err := uc.RegisterReceipt(ctx, purchases.ReceiptInput{
		Number:      "OC-101",
		SupplierID:  "s1",
		PaymentType: entity.PaymentTypeCredit,
		Items: []purchases.ReceiptItemInput{
			{ProductID: "p1", Quantity: d("3"), UnitCost: d("40")},
		},
		Date:   receiptDay,
		UserID: "user-1",
	})
	require.NoError(t, err)
	assert.True(t, order.PaidAmount.IsZero())

	// Crece la deuda con el proveedor; la caja no se toca.
	s, _ := store.Suppliers().GetByID("s1")
	assert.True(t, s.Balance.Equal(d("120")))
	_, err = cashboxUC.GetByDate(ctx, receiptDay)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecepcionValidaciones(t *testing.T) {
	uc, _, _, _ := newPurchaseUC(t)
	ctx := context.Background()

	// Sin líneas.
	_, err := uc.RegisterReceipt(ctx, purchases.ReceiptInput{
		Number:      "OC-102",
		PaymentType: entity.PaymentTypeCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Crédito sin proveedor.
	_, err = uc.RegisterReceipt(ctx, purchases.ReceiptInput{
		Number:      "OC-103",
		PaymentType: entity.PaymentTypeCredit,
		Items: []purchases.ReceiptItemInput{
			{ProductID: "p1", Quantity: d("1"), UnitCost: d("40")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Producto inexistente: rollback completo.
	_, err = uc.RegisterReceipt(ctx, purchases.ReceiptInput{
		Number:      "OC-104",
		PaymentType: entity.PaymentTypeCash,
		Items: []purchases.ReceiptItemInput{
			{ProductID: "no-existe", Quantity: d("1"), UnitCost: d("40")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
