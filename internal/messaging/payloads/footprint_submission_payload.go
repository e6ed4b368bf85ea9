package payloads

import "time"

// FootprintSubmissionPayload — замер, поставленный в очередь на импорт в журнал.
// Value передаётся как есть и разбирается воркером, чтобы ошибка формата
// обрабатывалась так же, как при прямом добавлении.
type FootprintSubmissionPayload struct {
	UserID      string    `json:"user_id"`
	Date        time.Time `json:"date"`
	Value       string    `json:"value"`
	SubmittedAt time.Time `json:"submitted_at"`
}
