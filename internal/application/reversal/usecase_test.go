package reversal_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ledger-pro/internal/application/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/application/ledger"
	"github.com/tu-usuario/ledger-pro/internal/application/reversal"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

var (
	day0 = time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	day1 = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
)

type revEnv struct {
	store      *memory.Store
	ledgerUC   *ledger.UseCase
	cashboxUC  *cashbox.UseCase
	reversalUC *reversal.UseCase
}

// newRevEnv deja el día 0 cerrado con apertura 1000 y el día 1 con una venta en
// efectivo de 500 (libro + caja) y un egreso manual de 200.
func newRevEnv(t *testing.T) (*revEnv, *entity.LedgerTransaction, *entity.LedgerTransaction) {
	t.Helper()
	store := memory.NewStore()
	ledgerUC := ledger.NewUseCase(store.Ledger())
	cashboxUC := cashbox.NewUseCase(store, store.Cashboxes(), ledgerUC, nil)
	env := &revEnv{
		store:      store,
		ledgerUC:   ledgerUC,
		cashboxUC:  cashboxUC,
		reversalUC: reversal.NewUseCase(store.Ledger(), store, cashboxUC, nil),
	}
	ctx := context.Background()

	require.NoError(t, store.Cashboxes().Create(&entity.DailyCashbox{
		Date:           entity.DayOf(day0),
		OpeningBalance: d("1000"),
	}))

	saleTx, err := ledgerUC.Record(ctx, ledger.RecordInput{
		Kind:          entity.TransactionKindIncome,
		Amount:        d("500"),
		Description:   "venta factura FV-100",
		ReferenceType: entity.ReferenceInvoice,
		ReferenceID:   "inv-1",
		OccurredAt:    day1,
		UserID:        "user-1",
	})
	require.NoError(t, err)
	require.NoError(t, cashboxUC.ApplyIncome(ctx, day1, d("500")))

	expenseTx, err := cashboxUC.AddManualExpense(ctx, day1, d("200"), "arriendo local", "arriendo", "user-1")
	require.NoError(t, err)
	return env, saleTx, expenseTx
}

func balance(t *testing.T, env *revEnv) decimal.Decimal {
	t.Helper()
	b, err := env.cashboxUC.CurrentBalance(context.Background())
	require.NoError(t, err)
	return b
}

func TestUndoLineaManual(t *testing.T) {
	env, _, expenseTx := newRevEnv(t)
	ctx := context.Background()
	require.True(t, balance(t, env).Equal(d("1300")), "1000 + 500 - 200")

	// Deshacer el egreso manual quita la línea itemizada y borra la fila del libro.
	require.NoError(t, env.reversalUC.Undo(ctx, expenseTx.ID, "user-1"))

	box, err := env.cashboxUC.GetByDate(ctx, day1)
	require.NoError(t, err)
	assert.Empty(t, box.ManualExpenses)
	assert.True(t, box.PurchaseExpenses.IsZero(), "una línea manual nunca toca el acumulador")

	got, err := env.store.Ledger().GetByID(expenseTx.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Ley de ida y vuelta: registrar y deshacer devuelve el saldo original.
	assert.True(t, balance(t, env).Equal(d("1500")))
}

func TestUndoAcumulador(t *testing.T) {
	env, saleTx, _ := newRevEnv(t)
	ctx := context.Background()

	// La venta no es línea manual: se decrementa el acumulador de ventas.
	require.NoError(t, env.reversalUC.Undo(ctx, saleTx.ID, "user-1"))
	box, err := env.cashboxUC.GetByDate(ctx, day1)
	require.NoError(t, err)
	assert.True(t, box.SalesIncome.IsZero())
	require.Len(t, box.ManualExpenses, 1, "las líneas manuales ajenas no se tocan")
	assert.True(t, balance(t, env).Equal(d("800")), "1000 - 200")
}

func TestUndoInexistente(t *testing.T) {
	env, _, _ := newRevEnv(t)
	err := env.reversalUC.Undo(context.Background(), "no-existe", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteByReference(t *testing.T) {
	env, saleTx, _ := newRevEnv(t)
	ctx := context.Background()

	count, err := env.reversalUC.DeleteByReference(ctx, entity.ReferenceInvoice, "inv-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	box, err := env.cashboxUC.GetByDate(ctx, day1)
	require.NoError(t, err)
	assert.True(t, box.SalesIncome.IsZero())
	got, err := env.store.Ledger().GetByID(saleTx.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.True(t, balance(t, env).Equal(d("800")))

	// Sin transacciones ligadas ya no hay nada que revertir.
	_, err = env.reversalUC.DeleteByReference(ctx, entity.ReferenceInvoice, "inv-1", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteByReferenceValidaciones(t *testing.T) {
	env, _, _ := newRevEnv(t)
	ctx := context.Background()

	_, err := env.reversalUC.DeleteByReference(ctx, entity.ReferenceType("OTRO"), "inv-1", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = env.reversalUC.DeleteByReference(ctx, entity.ReferenceInvoice, "", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUndoSobreDiaConciliado(t *testing.T) {
	env, saleTx, _ := newRevEnv(t)
	ctx := context.Background()

	_, err := env.cashboxUC.Reconcile(ctx, day1, d("1300"), "user-1", "")
	require.NoError(t, err)

	// La reversión es una corrección administrativa: sí opera sobre días conciliados.
	require.NoError(t, env.reversalUC.Undo(ctx, saleTx.ID, "user-1"))
	box, err := env.cashboxUC.GetByDate(ctx, day1)
	require.NoError(t, err)
	assert.True(t, box.SalesIncome.IsZero())
	assert.True(t, box.ClosingBalance.Equal(d("1300")), "el saldo contado no se recalcula")
}
