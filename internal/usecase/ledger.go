package usecase

import (
	"context"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
)

// FootprintLedger — журнал замеров углеродного следа.
// Средний след не кэшируется и вычисляется заново при каждом чтении.
type FootprintLedger interface {
	// Append разбирает сырое значение и добавляет замер.
	// Нулевая дата заменяется текущим временем.
	Append(ctx context.Context, userID uuid.UUID, date time.Time, rawValue string) (*domain.FootprintEntry, error)
	// AppendValue — то же для уже числового значения
	AppendValue(ctx context.Context, userID uuid.UUID, date time.Time, value float64) (*domain.FootprintEntry, error)
	EntriesFor(ctx context.Context, userID uuid.UUID) ([]domain.FootprintEntry, error)
	AverageFor(ctx context.Context, userID uuid.UUID) (float64, error)
	// Snapshot возвращает согласованную пару "история + среднее"
	Snapshot(ctx context.Context, userID uuid.UUID) ([]domain.FootprintEntry, float64, error)
}
