package memory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

// Las actualizaciones sobre IDs inexistentes fallan con ErrNotFound, igual que
// los adaptadores de PostgreSQL: nunca un éxito silencioso sin fila.
func TestActualizacionSobreIDInexistente(t *testing.T) {
	store := memory.NewStore()

	err := store.Products().UpdateQuantities("no-existe", d("1"), d("0"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.Customers().UpdateBalances("no-existe", d("10"), d("0"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.Suppliers().UpdateBalance("no-existe", d("10"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.SalesReturns().UpdateStatus("no-existe", entity.ReturnStatusSettled)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
