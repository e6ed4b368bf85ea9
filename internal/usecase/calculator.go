package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
)

// CalculationResult — посчитанный след и созданный замер.
type CalculationResult struct {
	Footprint float64                `json:"footprint"`
	Input     domain.CalculatorInput `json:"input"`
	Entry     *domain.FootprintEntry `json:"entry"`
}

// CalculatorOptions — значения выпадающих списков формы.
type CalculatorOptions struct {
	FuelTypes    []string `json:"fuelTypes"`
	HeatingTypes []string `json:"heatingTypes"`
	CommuteTypes []string `json:"commuteTypes"`
}

// CalculatorUseCase проверяет форму калькулятора и отправляет результат в журнал.
type CalculatorUseCase interface {
	Submit(ctx context.Context, userID uuid.UUID, form domain.CalculatorForm) (*CalculationResult, error)
	Options() CalculatorOptions
}

type calculatorUseCase struct {
	ledger FootprintLedger
	logger *slog.Logger
}

func NewCalculatorUseCase(ledger FootprintLedger, logger *slog.Logger) CalculatorUseCase {
	return &calculatorUseCase{ledger: ledger, logger: logger}
}

// Submit: при ошибке проверки в журнал ничего не попадает.
func (uc *calculatorUseCase) Submit(ctx context.Context, userID uuid.UUID, form domain.CalculatorForm) (*CalculationResult, error) {
	input, err := form.Parse()
	if err != nil {
		uc.logger.Info("calculator form rejected", "user_id", userID, "error", err)
		return nil, err
	}

	footprint := input.Footprint()
	entry, err := uc.ledger.AppendValue(ctx, userID, time.Time{}, footprint)
	if err != nil {
		return nil, err
	}
	return &CalculationResult{Footprint: footprint, Input: input, Entry: entry}, nil
}

func (uc *calculatorUseCase) Options() CalculatorOptions {
	return CalculatorOptions{
		FuelTypes:    append([]string(nil), domain.FuelTypes...),
		HeatingTypes: append([]string(nil), domain.HeatingTypes...),
		CommuteTypes: append([]string(nil), domain.CommuteTypes...),
	}
}
