package repository

import (
	"time"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// DailyCashboxRepository define el puerto para la caja diaria (una fila por día calendario).
type DailyCashboxRepository interface {
	GetByDate(date time.Time) (*entity.DailyCashbox, error)
	// GetForUpdate bloquea la fila del día (SELECT FOR UPDATE) para serializar
	// lecturas-modificaciones concurrentes sobre el mismo día.
	GetForUpdate(date time.Time) (*entity.DailyCashbox, error)
	// GetLatestBefore devuelve el día más reciente anterior a date (para sembrar la apertura).
	GetLatestBefore(date time.Time) (*entity.DailyCashbox, error)
	GetLatest() (*entity.DailyCashbox, error)
	Create(box *entity.DailyCashbox) error
	Update(box *entity.DailyCashbox) error
}
