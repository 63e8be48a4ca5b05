package repository

import "github.com/tu-usuario/ledger-pro/internal/domain/entity"

// AuditLogRepository define el puerto de la bitácora de auditoría.
type AuditLogRepository interface {
	Create(entry *entity.AuditLog) error
	List(limit, offset int) ([]*entity.AuditLog, error)
}
