package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/application/audit"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
	domainstock "github.com/tu-usuario/ledger-pro/internal/domain/stock"
)

// UseCase aplica movimientos al libro de stock de dos ubicaciones (bodega, tienda)
// de forma transaccional, con bloqueo de fila por producto (SELECT FOR UPDATE).
type UseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	prodRepo repository.ProductRepository
	notifier Notifier
	auditor  *audit.Recorder
}

// NewUseCase construye el caso de uso. notifier puede ser nil (sin alertas).
func NewUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository, prodRepo repository.ProductRepository, notifier Notifier, auditor *audit.Recorder) *UseCase {
	return &UseCase{txRunner: txRunner, movRepo: movRepo, prodRepo: prodRepo, notifier: notifier, auditor: auditor}
}

// MovementInput entrada para aplicar un movimiento.
// Para OUT/SALE, Origin (WAREHOUSE o SHOP) es obligatorio y explícito: nunca se infiere.
// Para ADJUST, TargetWarehouseQty y TargetShopQty son los absolutos del conteo físico.
type MovementInput struct {
	ProductID          string
	Type               string
	Origin             string
	Quantity           decimal.Decimal
	TargetWarehouseQty *decimal.Decimal
	TargetShopQty      *decimal.Decimal
	Note               string
	Reference          string
	UserID             string
}

// Apply aplica un movimiento en su propia transacción y dispara la alerta de
// stock bajo después del commit.
func (uc *UseCase) Apply(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	var mov *entity.StockMovement
	var product *entity.Product
	err := uc.txRunner.RunStock(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		var err error
		mov, product, err = uc.ApplyInTx(movRepo, productRepo, input, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.maybeNotifyLowStock(ctx, mov, product)
	return mov, nil
}

// ApplyInTx aplica un movimiento con los repositorios proporcionados (misma
// transacción del caller). Lo usan los orquestadores de venta, compra y devolución.
//
// Algoritmo: bloquear la fila del producto, calcular el delta según el tipo,
// rechazar con InsufficientStockError si alguna ubicación quedaría en negativo,
// persistir las nuevas cantidades y agregar el movimiento con la foto post-mutación.
func (uc *UseCase) ApplyInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, *entity.Product, error) {
	mov, product, err := uc.applyLine(movRepo, productRepo, input, now, -1)
	return mov, product, err
}

func (uc *UseCase) applyLine(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	now time.Time,
	line int,
) (*entity.StockMovement, *entity.Product, error) {
	if input.ProductID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.Type != entity.MovementTypeADJUST && !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}

	product, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}

	warehouseQty := product.WarehouseQty
	shopQty := product.ShopQty
	delta := input.Quantity
	qty := input.Quantity

	switch input.Type {
	case entity.MovementTypeIN:
		warehouseQty = warehouseQty.Add(qty)

	case entity.MovementTypeOUT, entity.MovementTypeSALE:
		switch input.Origin {
		case entity.LocationWarehouse:
			if warehouseQty.LessThan(qty) {
				return nil, nil, &domain.InsufficientStockError{
					ProductID: input.ProductID, Location: entity.LocationWarehouse,
					Requested: qty, Available: warehouseQty, Line: line,
				}
			}
			warehouseQty = warehouseQty.Sub(qty)
		case entity.LocationShop:
			if shopQty.LessThan(qty) {
				return nil, nil, &domain.InsufficientStockError{
					ProductID: input.ProductID, Location: entity.LocationShop,
					Requested: qty, Available: shopQty, Line: line,
				}
			}
			shopQty = shopQty.Sub(qty)
		default:
			return nil, nil, domain.ErrInvalidInput
		}
		delta = qty.Neg()

	case entity.MovementTypeTransferToShop:
		// Ambos lados en la misma transacción: resta bodega, suma tienda.
		if warehouseQty.LessThan(qty) {
			return nil, nil, &domain.InsufficientStockError{
				ProductID: input.ProductID, Location: entity.LocationWarehouse,
				Requested: qty, Available: warehouseQty, Line: line,
			}
		}
		warehouseQty = warehouseQty.Sub(qty)
		shopQty = shopQty.Add(qty)

	case entity.MovementTypeTransferToWarehouse:
		if shopQty.LessThan(qty) {
			return nil, nil, &domain.InsufficientStockError{
				ProductID: input.ProductID, Location: entity.LocationShop,
				Requested: qty, Available: shopQty, Line: line,
			}
		}
		shopQty = shopQty.Sub(qty)
		warehouseQty = warehouseQty.Add(qty)

	case entity.MovementTypeADJUST:
		// Corrección autoritativa del conteo físico: fija absolutos, pero los
		// objetivos negativos siguen siendo inválidos.
		if input.TargetWarehouseQty == nil || input.TargetShopQty == nil {
			return nil, nil, domain.ErrInvalidInput
		}
		if input.TargetWarehouseQty.LessThan(decimal.Zero) || input.TargetShopQty.LessThan(decimal.Zero) {
			return nil, nil, domain.ErrInvalidInput
		}
		newTotal := input.TargetWarehouseQty.Add(*input.TargetShopQty)
		// El libro registra el delta firmado sobre el total previo, no un absoluto.
		delta = newTotal.Sub(product.TotalQty())
		warehouseQty = *input.TargetWarehouseQty
		shopQty = *input.TargetShopQty

	default:
		return nil, nil, domain.ErrInvalidInput
	}

	if err := productRepo.UpdateQuantities(product.ID, warehouseQty, shopQty); err != nil {
		return nil, nil, err
	}
	product.WarehouseQty = warehouseQty
	product.ShopQty = shopQty
	product.UpdatedAt = now

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		Type:      input.Type,
		Origin:    input.Origin,
		Quantity:  delta,
		Note:      input.Note,
		Reference: input.Reference,
		Date:      now,
		CreatedAt: now,
		CreatedBy: input.UserID,
		// Foto del estado DESPUÉS de aplicar el movimiento.
		WarehouseQty: warehouseQty,
		ShopQty:      shopQty,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, nil, err
	}
	return mov, product, nil
}

// BulkLine una línea de un lote de movimientos.
type BulkLine struct {
	ProductID string
	Quantity  decimal.Decimal
	Note      string
}

// ApplyBulk aplica un lote ordenado de líneas bajo un mismo tipo y nota exterior,
// en una sola transacción: si cualquier línea falla, el lote completo se rechaza
// y el error indica qué línea falló. Todo-o-nada por lote, no best-effort.
func (uc *UseCase) ApplyBulk(ctx context.Context, movementType, origin, note, reference, userID string, lines []BulkLine) ([]*entity.StockMovement, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var movements []*entity.StockMovement
	err := uc.txRunner.RunStock(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		now := time.Now()
		for i, l := range lines {
			lineNote := l.Note
			if lineNote == "" {
				lineNote = note
			}
			mov, _, err := uc.applyLine(movRepo, productRepo, MovementInput{
				ProductID: l.ProductID,
				Type:      movementType,
				Origin:    origin,
				Quantity:  l.Quantity,
				Note:      lineNote,
				Reference: reference,
				UserID:    userID,
			}, now, i)
			if err != nil {
				return err
			}
			movements = append(movements, mov)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// ListByProduct devuelve los movimientos de un producto en orden de aplicación.
func (uc *UseCase) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 500
	}
	return uc.movRepo.ListByProduct(productID, limit, offset)
}

// VerifyProduct repite todos los movimientos del producto desde (0,0) y compara
// contra sus cantidades actuales. Devuelve true si el libro reproduce el estado.
func (uc *UseCase) VerifyProduct(ctx context.Context, productID string) (bool, error) {
	product, err := uc.prodRepo.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByProduct(productID, 0, 0)
	if err != nil {
		return false, err
	}
	warehouseQty, shopQty := domainstock.Replay(movements)
	return warehouseQty.Equal(product.WarehouseQty) && shopQty.Equal(product.ShopQty), nil
}

func (uc *UseCase) maybeNotifyLowStock(ctx context.Context, mov *entity.StockMovement, product *entity.Product) {
	if uc.notifier == nil || product == nil {
		return
	}
	if mov.Type != entity.MovementTypeOUT && mov.Type != entity.MovementTypeSALE {
		return
	}
	if product.ReorderLevel.GreaterThan(decimal.Zero) && product.TotalQty().LessThanOrEqual(product.ReorderLevel) {
		uc.notifier.NotifyLowStock(ctx, product)
	}
}
