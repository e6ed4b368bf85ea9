package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
)

// FileStorage определяет методы для объектного хранилища (S3 / MinIO)
type FileStorage interface {
	UploadFile(ctx context.Context, objectKey string, fileContent io.Reader, contentType string) (string, error)
}

// ReportResult — ссылка на выгруженный отчёт.
type ReportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ReportUseCase выгружает историю замеров пользователя в CSV.
type ReportUseCase interface {
	Export(ctx context.Context, userID uuid.UUID) (*ReportResult, error)
}

type reportUseCase struct {
	ledger      FootprintLedger
	fileStorage FileStorage
	now         func() time.Time
	logger      *slog.Logger
}

// NewReportUseCase: fileStorage может быть nil, тогда выгрузка отключена.
func NewReportUseCase(ledger FootprintLedger, fileStorage FileStorage, logger *slog.Logger) ReportUseCase {
	return &reportUseCase{ledger: ledger, fileStorage: fileStorage, now: time.Now, logger: logger}
}

func (uc *reportUseCase) Export(ctx context.Context, userID uuid.UUID) (*ReportResult, error) {
	if uc.fileStorage == nil {
		return nil, fmt.Errorf("report export: %w", domain.ErrFeatureDisabled)
	}

	entries, avg, err := uc.ledger.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteFootprintCSV(&buf, entries, avg); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports/%s/%d.csv", userID, uc.now().Unix())
	url, err := uc.fileStorage.UploadFile(ctx, key, &buf, "text/csv")
	if err != nil {
		uc.logger.Error("failed to upload report", "user_id", userID, "key", key, "error", err)
		return nil, fmt.Errorf("upload report: %w", err)
	}

	uc.logger.Info("report exported", "user_id", userID, "key", key, "entries", len(entries))
	return &ReportResult{Key: key, URL: url}, nil
}

// WriteFootprintCSV пишет историю и итоговую строку со средним.
func WriteFootprintCSV(w io.Writer, entries []domain.FootprintEntry, average float64) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"id", "date", "value", "created_at"}}
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.Format(domain.DateLayout),
			strconv.FormatFloat(e.Value, 'f', -1, 64),
			e.CreatedAt.Format(time.RFC3339),
		})
	}
	rows = append(rows, []string{"average", "", strconv.FormatFloat(average, 'f', 2, 64), ""})

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write report csv: %w", err)
	}
	return nil
}
