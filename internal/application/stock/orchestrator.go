package stock

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// Transfer mueve cantidad entre bodega y tienda (ambos lados en la misma transacción).
func (uc *UseCase) Transfer(ctx context.Context, productID string, toShop bool, qty decimal.Decimal, note, userID string) (*entity.StockMovement, error) {
	movementType := entity.MovementTypeTransferToWarehouse
	if toShop {
		movementType = entity.MovementTypeTransferToShop
	}
	mov, err := uc.Apply(ctx, MovementInput{
		ProductID: productID,
		Type:      movementType,
		Quantity:  qty,
		Note:      note,
		UserID:    userID,
	})
	if err != nil {
		return nil, err
	}
	uc.auditor.Record(userID, "stock.transfer", "product", productID, "", note)
	return mov, nil
}

// AdjustPhysicalCount corrige las cantidades de un producto al resultado de un
// conteo físico. La nota de justificación es obligatoria: se exige aquí, en el
// orquestador, no en el libro.
func (uc *UseCase) AdjustPhysicalCount(ctx context.Context, productID string, targetWarehouseQty, targetShopQty decimal.Decimal, note, userID string) (*entity.StockMovement, error) {
	if note == "" {
		return nil, domain.ErrInvalidInput
	}
	mov, err := uc.Apply(ctx, MovementInput{
		ProductID:          productID,
		Type:               entity.MovementTypeADJUST,
		TargetWarehouseQty: &targetWarehouseQty,
		TargetShopQty:      &targetShopQty,
		Note:               note,
		UserID:             userID,
	})
	if err != nil {
		return nil, err
	}
	diff := fmt.Sprintf(`{"warehouse_qty":%s,"shop_qty":%s,"delta":%s}`,
		mov.WarehouseQty, mov.ShopQty, mov.Quantity)
	uc.auditor.Record(userID, "stock.adjust", "product", productID, diff, note)
	return mov, nil
}
