package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// ApplyMovementRequest cuerpo de POST /api/stock/movements.
// Para OUT y SALE, origin (WAREHOUSE o SHOP) es obligatorio.
// Para ADJUST se envían target_warehouse_qty y target_shop_qty (absolutos del conteo).
type ApplyMovementRequest struct {
	ProductID          string           `json:"product_id"`
	Type               string           `json:"type"`
	Origin             string           `json:"origin"`
	Quantity           decimal.Decimal  `json:"quantity"`
	TargetWarehouseQty *decimal.Decimal `json:"target_warehouse_qty"`
	TargetShopQty      *decimal.Decimal `json:"target_shop_qty"`
	Note               string           `json:"note"`
	Reference          string           `json:"reference"`
	UserID             string           `json:"user_id"`
}

// BulkLineRequest una línea de un lote.
type BulkLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note"`
}

// ApplyBulkRequest cuerpo de POST /api/stock/movements/bulk (todo-o-nada).
type ApplyBulkRequest struct {
	Type      string            `json:"type"`
	Origin    string            `json:"origin"`
	Note      string            `json:"note"`
	Reference string            `json:"reference"`
	UserID    string            `json:"user_id"`
	Lines     []BulkLineRequest `json:"lines"`
}

// TransferRequest cuerpo de POST /api/stock/transfer.
type TransferRequest struct {
	ProductID string          `json:"product_id"`
	ToShop    bool            `json:"to_shop"`
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note"`
	UserID    string          `json:"user_id"`
}

// AdjustRequest cuerpo de POST /api/stock/adjust. La nota es obligatoria.
type AdjustRequest struct {
	ProductID          string          `json:"product_id"`
	TargetWarehouseQty decimal.Decimal `json:"target_warehouse_qty"`
	TargetShopQty      decimal.Decimal `json:"target_shop_qty"`
	Note               string          `json:"note"`
	UserID             string          `json:"user_id"`
}

// StockMovementResponse un movimiento del libro con su foto post-mutación.
type StockMovementResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Type         string          `json:"type"`
	Origin       string          `json:"origin,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Note         string          `json:"note,omitempty"`
	Reference    string          `json:"reference,omitempty"`
	Date         time.Time       `json:"date"`
	WarehouseQty decimal.Decimal `json:"warehouse_qty"`
	ShopQty      decimal.Decimal `json:"shop_qty"`
}

// NewStockMovementResponse convierte la entidad a su DTO.
func NewStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Type:         m.Type,
		Origin:       m.Origin,
		Quantity:     m.Quantity,
		Note:         m.Note,
		Reference:    m.Reference,
		Date:         m.Date,
		WarehouseQty: m.WarehouseQty,
		ShopQty:      m.ShopQty,
	}
}

// NewStockMovementResponses convierte una lista de movimientos.
func NewStockMovementResponses(movements []*entity.StockMovement) []StockMovementResponse {
	out := make([]StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, NewStockMovementResponse(m))
	}
	return out
}
