package ports

import (
	"context"

	"github.com/GoArmGo/CarbonTracker/internal/messaging/payloads"
)

// FootprintSubmissionPublisher публикует замеры для асинхронного импорта.
// Используется обработчиком HTTP-запросов.
type FootprintSubmissionPublisher interface {
	PublishFootprintSubmission(ctx context.Context, payload payloads.FootprintSubmissionPayload) error
}

// FootprintSubmissionConsumer используется воркером для получения замеров из очереди.
type FootprintSubmissionConsumer interface {
	// StartConsumingFootprintSubmissions начинает прослушивание очереди,
	// handler вызывается для каждого полученного сообщения
	StartConsumingFootprintSubmissions(ctx context.Context, handler func(context.Context, payloads.FootprintSubmissionPayload) error) error
}
