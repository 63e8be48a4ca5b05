package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ledger-pro/internal/application/stock"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

// newStockUC construye el caso de uso sobre el store en memoria y siembra un producto.
func newStockUC(t *testing.T, warehouseQty, shopQty string) (*stock.UseCase, *memory.Store, string) {
	t.Helper()
	store := memory.NewStore()
	product := &entity.Product{
		ID:           "prod-1",
		SKU:          "SKU-1",
		Name:         "Producto de prueba",
		Price:        d("100"),
		WarehouseQty: d(warehouseQty),
		ShopQty:      d(shopQty),
	}
	require.NoError(t, store.Products().Create(product))
	uc := stock.NewUseCase(store, store.StockMovements(), store.Products(), nil, nil)
	return uc, store, product.ID
}

func productQtys(t *testing.T, store *memory.Store, id string) (decimal.Decimal, decimal.Decimal) {
	t.Helper()
	p, err := store.Products().GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.WarehouseQty, p.ShopQty
}

func TestTransferenciaYVenta(t *testing.T) {
	uc, store, productID := newStockUC(t, "0", "0")
	ctx := context.Background()

	// El stock inicial entra por el libro, no por fuera: IN de 10 -> (10,0).
	_, err := uc.Apply(ctx, stock.MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeIN,
		Quantity:  d("10"),
		Note:      "stock inicial",
		UserID:    "user-1",
	})
	require.NoError(t, err)

	// (10,0) -> transferir 4 a tienda -> (6,4)
	_, err = uc.Transfer(ctx, productID, true, d("4"), "reposición vitrina", "user-1")
	require.NoError(t, err)
	w, s := productQtys(t, store, productID)
	assert.True(t, w.Equal(d("6")) && s.Equal(d("4")), "transferencia debe mover 4 de bodega a tienda")

	// Venta de 2 desde tienda -> (6,2)
	_, err = uc.Apply(ctx, stock.MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeSALE,
		Origin:    entity.LocationShop,
		Quantity:  d("2"),
		UserID:    "user-1",
	})
	require.NoError(t, err)
	w, s = productQtys(t, store, productID)
	assert.True(t, w.Equal(d("6")) && s.Equal(d("2")))

	// Transferir 10 con solo 6 en bodega: insuficiente, el estado no cambia.
	_, err = uc.Transfer(ctx, productID, true, d("10"), "reposición", "user-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	w, s = productQtys(t, store, productID)
	assert.True(t, w.Equal(d("6")) && s.Equal(d("2")))

	// Venta de 5 desde tienda: insuficiente, el estado no cambia.
	_, err = uc.Apply(ctx, stock.MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeSALE,
		Origin:    entity.LocationShop,
		Quantity:  d("5"),
		UserID:    "user-1",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Equal(t, entity.LocationShop, insuf.Location)
	w, s = productQtys(t, store, productID)
	assert.True(t, w.Equal(d("6")) && s.Equal(d("2")), "un rechazo no debe mutar cantidades")

	// El libro reproduce el estado actual.
	ok, err := uc.VerifyProduct(ctx, productID)
	require.NoError(t, err)
	assert.True(t, ok, "repetir los movimientos desde (0,0) debe reproducir el producto")
}

func TestOrigenObligatorioEnSalidas(t *testing.T) {
	uc, _, productID := newStockUC(t, "10", "5")

	// OUT sin origen explícito se rechaza: nunca se infiere la ubicación.
	_, err := uc.Apply(context.Background(), stock.MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeOUT,
		Quantity:  d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoteTodoONada(t *testing.T) {
	uc, store, productID := newStockUC(t, "10", "0")
	other := &entity.Product{ID: "prod-2", SKU: "SKU-2", Name: "Otro", WarehouseQty: d("1")}
	require.NoError(t, store.Products().Create(other))

	// La línea 1 excede el stock del segundo producto: el lote completo se revierte.
	_, err := uc.ApplyBulk(context.Background(), entity.MovementTypeOUT, entity.LocationWarehouse,
		"salida lote", "ref-1", "user-1", []stock.BulkLine{
			{ProductID: productID, Quantity: d("3")},
			{ProductID: other.ID, Quantity: d("5")},
		})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Equal(t, 1, insuf.Line, "el error debe señalar la línea que falló")

	w, _ := productQtys(t, store, productID)
	assert.True(t, w.Equal(d("10")), "la línea 0 también debe revertirse")
	movs, err := store.StockMovements().ListByReference("ref-1")
	require.NoError(t, err)
	assert.Empty(t, movs, "un lote rechazado no deja movimientos")
}

func TestAjusteConteoFisico(t *testing.T) {
	uc, store, productID := newStockUC(t, "10", "2")
	ctx := context.Background()

	// La nota de justificación es obligatoria.
	_, err := uc.AdjustPhysicalCount(ctx, productID, d("7"), d("1"), "", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	mov, err := uc.AdjustPhysicalCount(ctx, productID, d("7"), d("1"), "conteo físico mensual", "user-1")
	require.NoError(t, err)
	// El libro registra el delta sobre el total (8 - 12 = -4), no un absoluto.
	assert.True(t, mov.Quantity.Equal(d("-4")))
	assert.True(t, mov.WarehouseQty.Equal(d("7")) && mov.ShopQty.Equal(d("1")))

	w, s := productQtys(t, store, productID)
	assert.True(t, w.Equal(d("7")) && s.Equal(d("1")))

	ok, err := uc.VerifyProduct(ctx, productID)
	require.NoError(t, err)
	assert.True(t, ok, "la repetición debe saltar a la foto del ajuste")

	// Objetivos negativos son inválidos.
	_, err = uc.AdjustPhysicalCount(ctx, productID, d("-1"), d("0"), "error de captura", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// fakeNotifier captura los eventos de stock bajo.
type fakeNotifier struct {
	products []*entity.Product
}

func (f *fakeNotifier) NotifyLowStock(_ context.Context, p *entity.Product) {
	f.products = append(f.products, p)
}

func TestAlertaStockBajo(t *testing.T) {
	store := memory.NewStore()
	product := &entity.Product{
		ID:           "prod-1",
		SKU:          "SKU-1",
		Name:         "Producto",
		WarehouseQty: d("5"),
		ReorderLevel: d("4"),
	}
	require.NoError(t, store.Products().Create(product))
	notifier := &fakeNotifier{}
	uc := stock.NewUseCase(store, store.StockMovements(), store.Products(), notifier, nil)

	// 5 -> 4: queda en el umbral, dispara la alerta.
	_, err := uc.Apply(context.Background(), stock.MovementInput{
		ProductID: product.ID,
		Type:      entity.MovementTypeOUT,
		Origin:    entity.LocationWarehouse,
		Quantity:  d("1"),
	})
	require.NoError(t, err)
	require.Len(t, notifier.products, 1)
	assert.Equal(t, product.ID, notifier.products[0].ID)

	// Una entrada IN no dispara alertas.
	_, err = uc.Apply(context.Background(), stock.MovementInput{
		ProductID: product.ID,
		Type:      entity.MovementTypeIN,
		Quantity:  d("10"),
	})
	require.NoError(t, err)
	assert.Len(t, notifier.products, 1)
}
