package cashbox_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ledger-pro/internal/application/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/application/ledger"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	domaincashbox "github.com/tu-usuario/ledger-pro/internal/domain/cashbox"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

var (
	day1 = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
)

func newCashboxUC(t *testing.T) (*cashbox.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ledgerUC := ledger.NewUseCase(store.Ledger())
	return cashbox.NewUseCase(store, store.Cashboxes(), ledgerUC, nil), store
}

func TestCreacionPerezosaYEncadenamiento(t *testing.T) {
	uc, store := newCashboxUC(t)
	ctx := context.Background()

	// Primer flujo del día 1 crea la caja con apertura cero.
	require.NoError(t, uc.ApplyIncome(ctx, day1, d("500")))
	box1, err := uc.GetByDate(ctx, day1)
	require.NoError(t, err)
	assert.True(t, box1.OpeningBalance.IsZero())
	assert.True(t, box1.SalesIncome.Equal(d("500")))

	// El día 2 siembra su apertura con el cierre esperado del día 1.
	box2, err := uc.GetOrCreate(ctx, day2)
	require.NoError(t, err)
	assert.True(t, box2.OpeningBalance.Equal(d("500")), "apertura = cierre esperado del día anterior")

	// Mismo día calendario, horas distintas: una sola fila.
	later := day1.Add(18 * time.Hour)
	require.NoError(t, uc.ApplyIncome(ctx, later, d("100")))
	box1, err = uc.GetByDate(ctx, day1)
	require.NoError(t, err)
	assert.True(t, box1.SalesIncome.Equal(d("600")))

	boxes := 0
	for _, day := range []time.Time{day1, day2} {
		if b, _ := store.Cashboxes().GetByDate(day); b != nil {
			boxes++
		}
	}
	assert.Equal(t, 2, boxes)
}

func TestLineaManualPareada(t *testing.T) {
	uc, store := newCashboxUC(t)
	ctx := context.Background()

	tx, err := uc.AddManualExpense(ctx, day1, d("200"), "arriendo local", "arriendo", "user-1")
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, entity.TransactionKindExpense, tx.Kind)
	assert.Equal(t, entity.ReferenceManual, tx.ReferenceType)
	assert.Equal(t, entity.DayOf(day1), tx.OccurredAt, "la transacción pareada lleva la fecha del día de la caja")

	box, err := uc.GetByDate(ctx, day1)
	require.NoError(t, err)
	require.Len(t, box.ManualExpenses, 1)
	assert.True(t, box.ManualExpenses[0].Amount.Equal(d("200")))
	assert.Equal(t, "arriendo local", box.ManualExpenses[0].Reason)
	assert.Equal(t, "arriendo", box.ManualExpenses[0].Category)

	// La fila del libro existe y es consultable por referencia MANUAL.
	got, err := store.Ledger().GetByID(tx.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Monto cero o razón vacía se rechazan.
	_, err = uc.AddManualIncome(ctx, day1, decimal.Zero, "x", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddManualIncome(ctx, day1, d("10"), "", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConciliacionTerminal(t *testing.T) {
	uc, _ := newCashboxUC(t)
	ctx := context.Background()

	require.NoError(t, uc.ApplyIncome(ctx, day1, d("500")))
	box, err := uc.Reconcile(ctx, day1, d("480"), "user-1", "faltaron 20 en caja")
	require.NoError(t, err)
	assert.True(t, box.IsReconciled)
	assert.True(t, box.ClosingBalance.Equal(d("480")))
	assert.Equal(t, "user-1", box.ReconciledBy)
	require.NotNil(t, box.ReconciledAt)

	// Conciliar dos veces falla y el primer cierre queda intacto.
	_, err = uc.Reconcile(ctx, day1, d("999"), "user-2", "")
	assert.ErrorIs(t, err, domain.ErrDayReconciled)
	box, err = uc.GetByDate(ctx, day1)
	require.NoError(t, err)
	assert.True(t, box.ClosingBalance.Equal(d("480")))
	assert.Equal(t, "user-1", box.ReconciledBy)

	// El día siguiente abre con el saldo contado, no con el esperado.
	next, err := uc.GetOrCreate(ctx, day2)
	require.NoError(t, err)
	assert.True(t, next.OpeningBalance.Equal(d("480")))
}

func TestRedirectDiaConciliado(t *testing.T) {
	uc, _ := newCashboxUC(t)
	ctx := context.Background()

	require.NoError(t, uc.ApplyIncome(ctx, day1, d("500")))
	_, err := uc.Reconcile(ctx, day1, d("500"), "user-1", "")
	require.NoError(t, err)

	// Un flujo tardío sobre el día conciliado se redirige al siguiente día sin conciliar.
	require.NoError(t, uc.ApplyIncome(ctx, day1, d("100")))
	frozen, err := uc.GetByDate(ctx, day1)
	require.NoError(t, err)
	assert.True(t, frozen.SalesIncome.Equal(d("500")), "la caja conciliada no cambia")

	next, err := uc.GetByDate(ctx, day2)
	require.NoError(t, err)
	assert.True(t, next.SalesIncome.Equal(d("100")), "el monto aterriza en el día siguiente")

	// Las líneas manuales no se redirigen: se rechazan explícitamente.
	_, err = uc.AddManualIncome(ctx, day1, d("50"), "tardío", "user-1")
	assert.ErrorIs(t, err, domain.ErrDayReconciled)
}

func TestCurrentBalance(t *testing.T) {
	uc, _ := newCashboxUC(t)
	ctx := context.Background()

	// Sin días registrados: cero.
	balance, err := uc.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	require.NoError(t, uc.ApplyIncome(ctx, day1, d("500")))
	require.NoError(t, uc.ApplyExpense(ctx, day1, d("120")))
	balance, err = uc.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("380")), "dinero en mano = cierre esperado del último día")

	// Tras conciliar manda el saldo contado.
	_, err = uc.Reconcile(ctx, day1, d("375"), "user-1", "")
	require.NoError(t, err)
	balance, err = uc.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("375")))

	box, err := uc.GetByDate(ctx, day1)
	require.NoError(t, err)
	assert.True(t, domaincashbox.EffectiveClosing(box).Equal(d("375")))
}

func TestGetByDateInexistente(t *testing.T) {
	uc, _ := newCashboxUC(t)
	_, err := uc.GetByDate(context.Background(), day1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
