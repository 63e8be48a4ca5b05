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

var _ repository.SalesReturnRepository = (*SalesReturnRepo)(nil)

// SalesReturnRepo implementación de SalesReturnRepository sobre PostgreSQL (usable con pool o tx).
type SalesReturnRepo struct {
	q Querier
}

// NewSalesReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesReturnRepository(q Querier) *SalesReturnRepo {
	return &SalesReturnRepo{q: q}
}

// Create inserta la cabecera de una devolución.
func (r *SalesReturnRepo) Create(ret *entity.SalesReturn) error {
	query := `
		INSERT INTO sales_returns
			(id, number, invoice_id, customer_id, refund_method, total, status, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.Number, ret.InvoiceID, nullIfEmpty(ret.CustomerID),
		ret.RefundMethod, ret.Total, ret.Status, ret.Date, ret.CreatedAt, ret.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert sales return: %w", err)
	}
	return nil
}

// CreateItem inserta una línea devuelta.
func (r *SalesReturnRepo) CreateItem(item *entity.SalesReturnItem) error {
	query := `
		INSERT INTO sales_return_items
			(id, sales_return_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SalesReturnID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sales return item: %w", err)
	}
	return nil
}

const salesReturnColumns = `id, number, invoice_id, COALESCE(customer_id, ''),
		refund_method, total, status, date, created_at, created_by`

// GetByID obtiene una devolución; devuelve nil (sin error) si no existe.
func (r *SalesReturnRepo) GetByID(id string) (*entity.SalesReturn, error) {
	query := `SELECT ` + salesReturnColumns + ` FROM sales_returns WHERE id = $1`
	ret, err := scanSalesReturn(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales return: %w", err)
	}
	return ret, nil
}

// GetItems lista las líneas de una devolución.
func (r *SalesReturnRepo) GetItems(returnID string) ([]*entity.SalesReturnItem, error) {
	query := `
		SELECT id, sales_return_id, product_id, quantity, unit_price, subtotal
		FROM sales_return_items WHERE sales_return_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, returnID)
	if err != nil {
		return nil, fmt.Errorf("get sales return items: %w", err)
	}
	defer rows.Close()

	var out []*entity.SalesReturnItem
	for rows.Next() {
		var item entity.SalesReturnItem
		err := rows.Scan(&item.ID, &item.SalesReturnID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("scan sales return item: %w", err)
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

// UpdateStatus avanza la máquina de estados (created -> settled).
func (r *SalesReturnRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE sales_returns SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sales return status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByInvoice lista las devoluciones de una factura.
func (r *SalesReturnRepo) ListByInvoice(invoiceID string) ([]*entity.SalesReturn, error) {
	query := `SELECT ` + salesReturnColumns + `
		FROM sales_returns WHERE invoice_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list sales returns by invoice: %w", err)
	}
	defer rows.Close()

	var out []*entity.SalesReturn
	for rows.Next() {
		ret, err := scanSalesReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales return: %w", err)
		}
		out = append(out, ret)
	}
	return out, rows.Err()
}

func scanSalesReturn(row pgx.Row) (*entity.SalesReturn, error) {
	var ret entity.SalesReturn
	err := row.Scan(&ret.ID, &ret.Number, &ret.InvoiceID, &ret.CustomerID,
		&ret.RefundMethod, &ret.Total, &ret.Status, &ret.Date, &ret.CreatedAt, &ret.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}
