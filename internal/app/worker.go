package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/GoArmGo/CarbonTracker/internal/messaging/payloads"
	"github.com/GoArmGo/CarbonTracker/internal/usecase"
	"github.com/google/uuid"
)

var errQueueDisabled = errors.New("worker mode requires RABBITMQ_URL")

// runWorker запускает потребителя RabbitMQ и блокируется до отмены ctx.
func runWorker(ctx context.Context, c Components, logger *slog.Logger) error {
	if c.Consumer == nil {
		return errQueueDisabled
	}

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	handler := footprintSubmissionHandler(c.Ledger, logger)
	if err := c.Consumer.StartConsumingFootprintSubmissions(workerCtx, handler); err != nil {
		return fmt.Errorf("start RabbitMQ consumer: %w", err)
	}
	logger.Info("worker started, waiting for footprint submissions")

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping worker")
	return nil
}

// footprintSubmissionHandler добавляет замер из очереди в журнал.
// Ошибки данных (нет пользователя, неверное значение) окончательны: они
// логируются, а сообщение подтверждается. Остальные ошибки возвращаются,
// и сообщение попадает обратно в очередь.
func footprintSubmissionHandler(ledger usecase.FootprintLedger, logger *slog.Logger) func(context.Context, payloads.FootprintSubmissionPayload) error {
	return func(ctx context.Context, p payloads.FootprintSubmissionPayload) error {
		userID, err := uuid.Parse(p.UserID)
		if err != nil {
			logger.Warn("dropping submission with bad user id", "user_id", p.UserID, "error", err)
			return nil
		}

		entry, err := ledger.Append(ctx, userID, p.Date, p.Value)
		var invalid *domain.InvalidValueError
		switch {
		case err == nil:
			logger.Info("imported footprint", "user_id", userID, "entry_id", entry.ID, "submitted_at", p.SubmittedAt)
			return nil
		case errors.Is(err, domain.ErrNotFound), errors.As(err, &invalid):
			logger.Warn("dropping rejected submission", "user_id", userID, "value", p.Value, "error", err)
			return nil
		default:
			return err
		}
	}
}
