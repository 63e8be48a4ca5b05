package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta la cabecera de una orden de compra.
func (r *PurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders
			(id, number, supplier_id, date, total, paid_amount, payment_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Number, nullIfEmpty(o.SupplierID), o.Date,
		o.Total, o.PaidAmount, o.PaymentType, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de orden de compra.
func (r *PurchaseOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items
			(id, purchase_order_id, product_id, quantity, unit_cost, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseOrderID, item.ProductID, item.Quantity, item.UnitCost, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order item: %w", err)
	}
	return nil
}

// GetByID obtiene una orden; devuelve nil (sin error) si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, number, COALESCE(supplier_id, ''), date, total, paid_amount,
			payment_type, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Number, &o.SupplierID, &o.Date, &o.Total,
		&o.PaidAmount, &o.PaymentType, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

// GetItems lista las líneas de una orden.
func (r *PurchaseOrderRepo) GetItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, purchase_order_id, product_id, quantity, unit_cost, subtotal
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get purchase order items: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrderItem
	for rows.Next() {
		var item entity.PurchaseOrderItem
		err := rows.Scan(&item.ID, &item.PurchaseOrderID, &item.ProductID,
			&item.Quantity, &item.UnitCost, &item.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

// Update reescribe totales y pagado de la orden.
func (r *PurchaseOrderRepo) Update(o *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET total = $2, paid_amount = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, o.ID, o.Total, o.PaidAmount, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}
