package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ledger-pro/internal/application/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/application/ledger"
	"github.com/tu-usuario/ledger-pro/internal/application/sales"
	"github.com/tu-usuario/ledger-pro/internal/application/stock"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

var saleDay = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

// testEnv agrupa los casos de uso cableados sobre el store en memoria.
type testEnv struct {
	store     *memory.Store
	stockUC   *stock.UseCase
	cashboxUC *cashbox.UseCase
	ledgerUC  *ledger.UseCase
	saleUC    *sales.SaleUseCase
	returnUC  *sales.ReturnUseCase
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	ledgerUC := ledger.NewUseCase(store.Ledger())
	cashboxUC := cashbox.NewUseCase(store, store.Cashboxes(), ledgerUC, nil)
	stockUC := stock.NewUseCase(store, store.StockMovements(), store.Products(), nil, nil)
	return &testEnv{
		store:     store,
		stockUC:   stockUC,
		cashboxUC: cashboxUC,
		ledgerUC:  ledgerUC,
		saleUC:    sales.NewSaleUseCase(store, stockUC, cashboxUC, ledgerUC, nil),
		returnUC: sales.NewReturnUseCase(
			store.Invoices(), store.SalesReturns(), store.Customers(),
			store, stockUC, cashboxUC, ledgerUC, nil,
		),
	}
}

func (e *testEnv) seedProduct(t *testing.T, id string, warehouseQty string) {
	t.Helper()
	require.NoError(t, e.store.Products().Create(&entity.Product{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         "Producto " + id,
		Price:        d("100"),
		WarehouseQty: d(warehouseQty),
	}))
}

func TestVentaEfectivo(t *testing.T) {
	env := newEnv(t)
	env.seedProduct(t, "p1", "10")
	ctx := context.Background()

	inv, err := env.saleUC.RegisterSale(ctx, sales.SaleInput{
		Number:      "FV-100",
		PaymentType: entity.PaymentTypeCash,
		Origin:      entity.LocationWarehouse,
		Items: []sales.SaleItemInput{
			{ProductID: "p1", Quantity: d("3"), UnitPrice: d("100")},
		},
		Date:   saleDay,
		UserID: "user-1",
	})
	require.NoError(t, err)
	assert.True(t, inv.Total.Equal(d("300")))
	assert.True(t, inv.PaidAmount.Equal(d("300")), "venta en efectivo queda pagada completa")

	// Stock descontado de la ubicación elegida.
	p, err := env.store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, p.WarehouseQty.Equal(d("7")))

	// Ingreso en el libro referenciando la factura.
	txs, err := env.ledgerUC.FindByReference(ctx, entity.ReferenceInvoice, inv.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionKindIncome, txs[0].Kind)
	assert.True(t, txs[0].Amount.Equal(d("300")))

	// Caja del día acumula la venta.
	box, err := env.cashboxUC.GetByDate(ctx, saleDay)
	require.NoError(t, err)
	assert.True(t, box.SalesIncome.Equal(d("300")))

	// Movimientos etiquetados con la factura.
	movs, err := env.store.StockMovements().ListByReference(inv.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeSALE, movs[0].Type)
}

func TestVentaCredito(t *testing.T) {
	env := newEnv(t)
	env.seedProduct(t, "p1", "10")
	require.NoError(t, env.store.Customers().Create(&entity.Customer{ID: "c1", Name: "Cliente"}))
	ctx := context.Background()

	inv, err := env.saleUC.RegisterSale(ctx, sales.SaleInput{
		Number:      "FV-101",
		CustomerID:  "c1",
		PaymentType: entity.PaymentTypeCredit,
		Origin:      entity.LocationWarehouse,
		Items: []sales.SaleItemInput{
			{ProductID: "p1", Quantity: d("2"), UnitPrice: d("150")},
		},
		Date:   saleDay,
		UserID: "user-1",
	})
	require.NoError(t, err)
	assert.True(t, inv.PaidAmount.IsZero(), "venta a crédito no registra pago")

	// La deuda del cliente crece; la caja del día no se toca.
	c, err := env.store.Customers().GetByID("c1")
	require.NoError(t, err)
	assert.True(t, c.Balance.Equal(d("300")))
	_, err = env.cashboxUC.GetByDate(ctx, saleDay)
	assert.ErrorIs(t, err, domain.ErrNotFound, "una venta a crédito no crea caja")
}

func TestVentaSinStockRollback(t *testing.T) {
	env := newEnv(t)
	env.seedProduct(t, "p1", "10")
	env.seedProduct(t, "p2", "1")
	ctx := context.Background()

	_, err := env.saleUC.RegisterSale(ctx, sales.SaleInput{
		InvoiceID:   "inv-rollback",
		Number:      "FV-102",
		PaymentType: entity.PaymentTypeCash,
		Origin:      entity.LocationWarehouse,
		Items: []sales.SaleItemInput{
			{ProductID: "p1", Quantity: d("3"), UnitPrice: d("100")},
			{ProductID: "p2", Quantity: d("5"), UnitPrice: d("50")},
		},
		Date:   saleDay,
		UserID: "user-1",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó a medias: ni stock, ni factura, ni libro, ni caja.
	p1, _ := env.store.Products().GetByID("p1")
	assert.True(t, p1.WarehouseQty.Equal(d("10")), "la línea válida también se revierte")
	inv, err := env.store.Invoices().GetByID("inv-rollback")
	require.NoError(t, err)
	assert.Nil(t, inv)
	txs, _ := env.store.Ledger().FindByReference(entity.ReferenceInvoice, "inv-rollback")
	assert.Empty(t, txs)
	_, err = env.cashboxUC.GetByDate(ctx, saleDay)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVentaIdempotente(t *testing.T) {
	env := newEnv(t)
	env.seedProduct(t, "p1", "10")
	ctx := context.Background()

	in := sales.SaleInput{
		InvoiceID:   "inv-fija",
		Number:      "FV-103",
		PaymentType: entity.PaymentTypeCash,
		Origin:      entity.LocationWarehouse,
		Items: []sales.SaleItemInput{
			{ProductID: "p1", Quantity: d("1"), UnitPrice: d("100")},
		},
		Date:   saleDay,
		UserID: "user-1",
	}
	_, err := env.saleUC.RegisterSale(ctx, in)
	require.NoError(t, err)

	// El reintento con el mismo ID choca con la llave de idempotencia del libro
	// y se revierte completo: el stock no se descuenta dos veces.
	_, err = env.saleUC.RegisterSale(ctx, in)
	require.ErrorIs(t, err, domain.ErrDuplicate)
	p, _ := env.store.Products().GetByID("p1")
	assert.True(t, p.WarehouseQty.Equal(d("9")))
	box, err := env.cashboxUC.GetByDate(ctx, saleDay)
	require.NoError(t, err)
	assert.True(t, box.SalesIncome.Equal(d("100")), "la caja solo acumula la primera venta")
}

func TestVentaPrecioDeLista(t *testing.T) {
	env := newEnv(t)
	env.seedProduct(t, "p1", "10")

	// Precio unitario cero usa el precio de lista del producto (100).
	inv, err := env.saleUC.RegisterSale(context.Background(), sales.SaleInput{
		Number:      "FV-104",
		PaymentType: entity.PaymentTypeCash,
		Origin:      entity.LocationWarehouse,
		Items: []sales.SaleItemInput{
			{ProductID: "p1", Quantity: d("2")},
		},
		Date:   saleDay,
		UserID: "user-1",
	})
	require.NoError(t, err)
	assert.True(t, inv.Total.Equal(d("200")))
}

func TestVentaValidaciones(t *testing.T) {
	env := newEnv(t)
	env.seedProduct(t, "p1", "10")
	ctx := context.Background()

	// Sin origen explícito.
	_, err := env.saleUC.RegisterSale(ctx, sales.SaleInput{
		Number:      "FV-105",
		PaymentType: entity.PaymentTypeCash,
		Items:       []sales.SaleItemInput{{ProductID: "p1", Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Crédito sin cliente.
	_, err = env.saleUC.RegisterSale(ctx, sales.SaleInput{
		Number:      "FV-106",
		PaymentType: entity.PaymentTypeCredit,
		Origin:      entity.LocationWarehouse,
		Items:       []sales.SaleItemInput{{ProductID: "p1", Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin líneas.
	_, err = env.saleUC.RegisterSale(ctx, sales.SaleInput{
		Number:      "FV-107",
		PaymentType: entity.PaymentTypeCash,
		Origin:      entity.LocationWarehouse,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
