package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ledger-pro/internal/application/sales"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

var returnDay = time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)

// sellCash registra una venta en efectivo de 3 unidades a 100 y devuelve la factura.
func sellCash(t *testing.T, env *testEnv) *entity.Invoice {
	t.Helper()
	env.seedProduct(t, "p1", "10")
	inv, err := env.saleUC.RegisterSale(context.Background(), sales.SaleInput{
		Number:      "FV-200",
		PaymentType: entity.PaymentTypeCash,
		Origin:      entity.LocationWarehouse,
		Items: []sales.SaleItemInput{
			{ProductID: "p1", Quantity: d("3"), UnitPrice: d("100")},
		},
		Date:   saleDay,
		UserID: "user-1",
	})
	require.NoError(t, err)
	return inv
}

func TestDevolucionEfectivo(t *testing.T) {
	env := newEnv(t)
	inv := sellCash(t, env)
	ctx := context.Background()

	ret, err := env.returnUC.RegisterReturn(ctx, sales.ReturnInput{
		InvoiceID:    inv.ID,
		Items:        []sales.ReturnItemInput{{ProductID: "p1", Quantity: d("1")}},
		RefundMethod: entity.RefundMethodCash,
		Date:         returnDay,
		UserID:       "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStatusSettled, ret.Status)
	assert.True(t, ret.Total.Equal(d("100")))

	// La factura se reescribe: total y pagado bajan, la línea acumula lo devuelto.
	updated, err := env.store.Invoices().GetByID(inv.ID)
	require.NoError(t, err)
	assert.True(t, updated.Total.Equal(d("200")))
	assert.True(t, updated.PaidAmount.Equal(d("200")))
	items, err := env.store.Invoices().GetItems(inv.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].ReturnedQty.Equal(d("1")))
	assert.True(t, items[0].RemainingQty().Equal(d("2")))

	// El stock reingresa a bodega (10 - 3 + 1 = 8).
	p, _ := env.store.Products().GetByID("p1")
	assert.True(t, p.WarehouseQty.Equal(d("8")))

	// El reembolso entra como ingreso de ventas negativo en la caja del día de la
	// devolución, no del día de la venta.
	saleBox, err := env.cashboxUC.GetByDate(ctx, saleDay)
	require.NoError(t, err)
	assert.True(t, saleBox.SalesIncome.Equal(d("300")), "la caja del día de la venta no cambia")
	retBox, err := env.cashboxUC.GetByDate(ctx, returnDay)
	require.NoError(t, err)
	assert.True(t, retBox.SalesIncome.Equal(d("-100")), "devolución = ingreso de ventas negativo")

	// Y el libro registra el egreso referenciando la devolución.
	txs, err := env.ledgerUC.FindByReference(ctx, entity.ReferenceSalesReturn, ret.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionKindExpense, txs[0].Kind)
	assert.True(t, txs[0].Amount.Equal(d("100")))
}

func TestDevolucionExcedeVendido(t *testing.T) {
	env := newEnv(t)
	inv := sellCash(t, env)
	ctx := context.Background()

	// Primera devolución de 2 unidades.
	_, err := env.returnUC.RegisterReturn(ctx, sales.ReturnInput{
		InvoiceID:    inv.ID,
		Items:        []sales.ReturnItemInput{{ProductID: "p1", Quantity: d("2")}},
		RefundMethod: entity.RefundMethodCash,
		Date:         returnDay,
		UserID:       "user-1",
	})
	require.NoError(t, err)

	// Solo queda 1 sin devolver: pedir 2 se rechaza antes de cualquier mutación.
	_, err = env.returnUC.RegisterReturn(ctx, sales.ReturnInput{
		InvoiceID:    inv.ID,
		Items:        []sales.ReturnItemInput{{ProductID: "p1", Quantity: d("2")}},
		RefundMethod: entity.RefundMethodCash,
		Date:         returnDay,
		UserID:       "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Producto no vendido en esa factura.
	env.seedProduct(t, "p9", "5")
	_, err = env.returnUC.RegisterReturn(ctx, sales.ReturnInput{
		InvoiceID:    inv.ID,
		Items:        []sales.ReturnItemInput{{ProductID: "p9", Quantity: d("1")}},
		RefundMethod: entity.RefundMethodCash,
		Date:         returnDay,
		UserID:       "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDevolucionSaldoCliente(t *testing.T) {
	env := newEnv(t)
	env.seedProduct(t, "p1", "10")
	require.NoError(t, env.store.Customers().Create(&entity.Customer{ID: "c1", Name: "Cliente"}))
	ctx := context.Background()

	// Venta a crédito de 300: el cliente debe 300.
	inv, err := env.saleUC.RegisterSale(ctx, sales.SaleInput{
		Number:      "FV-201",
		CustomerID:  "c1",
		PaymentType: entity.PaymentTypeCredit,
		Origin:      entity.LocationWarehouse,
		Items: []sales.SaleItemInput{
			{ProductID: "p1", Quantity: d("3"), UnitPrice: d("100")},
		},
		Date:   saleDay,
		UserID: "user-1",
	})
	require.NoError(t, err)

	// Devolución de 100 contra saldo: baja deuda, no toca billetera.
	_, err = env.returnUC.RegisterReturn(ctx, sales.ReturnInput{
		InvoiceID:    inv.ID,
		Items:        []sales.ReturnItemInput{{ProductID: "p1", Quantity: d("1")}},
		RefundMethod: entity.RefundMethodCustomerBalance,
		Date:         returnDay,
		UserID:       "user-1",
	})
	require.NoError(t, err)
	c, _ := env.store.Customers().GetByID("c1")
	assert.True(t, c.Balance.Equal(d("200")))
	assert.True(t, c.CreditBalance.IsZero())

	// Si el reembolso excede la deuda, el excedente va a la billetera
	// y nunca quedan deuda y billetera positivas a la vez.
	require.NoError(t, env.store.Customers().UpdateBalances("c1", d("50"), d("0")))
	_, err = env.returnUC.RegisterReturn(ctx, sales.ReturnInput{
		InvoiceID:    inv.ID,
		Items:        []sales.ReturnItemInput{{ProductID: "p1", Quantity: d("2")}},
		RefundMethod: entity.RefundMethodCustomerBalance,
		Date:         returnDay,
		UserID:       "user-1",
	})
	require.NoError(t, err)
	c, _ = env.store.Customers().GetByID("c1")
	assert.True(t, c.Balance.IsZero(), "primero se liquida la deuda")
	assert.True(t, c.CreditBalance.Equal(d("150")), "el excedente se acredita a la billetera")

	// La caja nunca participa en la liquidación contra saldo.
	_, err = env.cashboxUC.GetByDate(ctx, returnDay)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// failingInvoiceRepo delega todo salvo la reescritura de líneas, que siempre falla.
type failingInvoiceRepo struct {
	repository.InvoiceRepository
	err error
}

func (f *failingInvoiceRepo) UpdateItem(*entity.InvoiceItem) error { return f.err }

func TestDevolucionFalloAMitadDeCamino(t *testing.T) {
	env := newEnv(t)
	inv := sellCash(t, env)
	cause := errors.New("factura bloqueada")
	uc := sales.NewReturnUseCase(
		&failingInvoiceRepo{InvoiceRepository: env.store.Invoices(), err: cause},
		env.store.SalesReturns(), env.store.Customers(),
		env.store, env.stockUC, env.cashboxUC, env.ledgerUC, nil,
	)

	_, err := uc.RegisterReturn(context.Background(), sales.ReturnInput{
		InvoiceID:    inv.ID,
		Items:        []sales.ReturnItemInput{{ProductID: "p1", Quantity: d("1")}},
		RefundMethod: entity.RefundMethodCash,
		Date:         returnDay,
		UserID:       "user-1",
	})

	// El error estructurado nombra el paso que falló y los ya completados,
	// y conserva la causa original en la cadena.
	var partial *domain.PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "reescritura-factura", partial.FailedStep)
	assert.Equal(t, []string{"registrar-devolucion", "reingreso-stock"}, partial.Completed)
	assert.ErrorIs(t, err, cause)

	// Los pasos completados quedan en pie para reintento o compensación:
	// la devolución existe en estado created y el stock ya reingresó.
	rets, err2 := env.store.SalesReturns().ListByInvoice(inv.ID)
	require.NoError(t, err2)
	require.Len(t, rets, 1)
	assert.Equal(t, entity.ReturnStatusCreated, rets[0].Status)
	p, _ := env.store.Products().GetByID("p1")
	assert.True(t, p.WarehouseQty.Equal(d("8")), "el reingreso del paso 2 no se revierte")
}

func TestDevolucionValidaciones(t *testing.T) {
	env := newEnv(t)
	inv := sellCash(t, env)
	ctx := context.Background()

	// Método de reembolso inválido.
	_, err := env.returnUC.RegisterReturn(ctx, sales.ReturnInput{
		InvoiceID:    inv.ID,
		Items:        []sales.ReturnItemInput{{ProductID: "p1", Quantity: d("1")}},
		RefundMethod: "TRANSFER",
		UserID:       "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Factura inexistente.
	_, err = env.returnUC.RegisterReturn(ctx, sales.ReturnInput{
		InvoiceID:    "no-existe",
		Items:        []sales.ReturnItemInput{{ProductID: "p1", Quantity: d("1")}},
		RefundMethod: entity.RefundMethodCash,
		UserID:       "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Cantidad no positiva.
	_, err = env.returnUC.RegisterReturn(ctx, sales.ReturnInput{
		InvoiceID:    inv.ID,
		Items:        []sales.ReturnItemInput{{ProductID: "p1", Quantity: d("0")}},
		RefundMethod: entity.RefundMethodCash,
		UserID:       "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
