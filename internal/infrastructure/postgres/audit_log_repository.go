package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de la bitácora sobre PostgreSQL (usable con pool o tx).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta una entrada de bitácora.
func (r *AuditLogRepo) Create(entry *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs
			(id, user_id, action, entity, entity_id, diff, note, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.UserID, entry.Action, entry.Entity, entry.EntityID,
		nullIfEmpty(entry.Diff), nullIfEmpty(entry.Note), entry.LoggedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List lista las entradas más recientes primero.
func (r *AuditLogRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, user_id, action, entity, entity_id, COALESCE(diff, ''), COALESCE(note, ''), logged_at
		FROM audit_logs ORDER BY logged_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditLog
	for rows.Next() {
		var entry entity.AuditLog
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.Entity,
			&entry.EntityID, &entry.Diff, &entry.Note, &entry.LoggedAt)
		if err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, &entry)
	}
	return out, rows.Err()
}
