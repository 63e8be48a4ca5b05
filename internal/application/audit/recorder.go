package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
	"github.com/tu-usuario/ledger-pro/pkg/logger"
)

// Recorder agrega entradas a la bitácora de auditoría en modo fire-and-forget:
// un fallo al persistir se registra en el log y nunca aborta la operación financiera.
type Recorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record persiste una entrada de auditoría. Nunca retorna error.
func (r *Recorder) Record(userID, action, entityName, entityID, diff, note string) {
	if r == nil || r.repo == nil {
		return
	}
	entry := &entity.AuditLog{
		ID:       uuid.New().String(),
		UserID:   userID,
		Action:   action,
		Entity:   entityName,
		EntityID: entityID,
		Diff:     diff,
		Note:     note,
		LoggedAt: time.Now(),
	}
	if err := r.repo.Create(entry); err != nil && r.log != nil {
		r.log.Warn().Err(err).
			Str("action", action).
			Str("entity", entityName).
			Str("entity_id", entityID).
			Msg("no se pudo escribir la bitácora de auditoría")
	}
}

// List devuelve las entradas más recientes.
func (r *Recorder) List(limit, offset int) ([]*entity.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.repo.List(limit, offset)
}
