package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/CarbonTracker/internal/config"
	"github.com/GoArmGo/CarbonTracker/internal/core/ports"
	"github.com/GoArmGo/CarbonTracker/internal/usecase"
)

// Режимы запуска.
const (
	ModeServer = "server"
	ModeWorker = "worker"
	ModeSeed   = "seed"
)

// Components — собранный граф зависимостей.
// Publisher, Consumer, Pinger и FileStorage необязательны.
type Components struct {
	Auth       usecase.AuthUseCase
	Profiles   usecase.ProfileUseCase
	Ledger     usecase.FootprintLedger
	Calculator usecase.CalculatorUseCase
	News       usecase.NewsUseCase
	Reports    usecase.ReportUseCase
	Seeder     *usecase.Seeder

	Publisher ports.FootprintSubmissionPublisher
	Consumer  ports.FootprintSubmissionConsumer
	Pinger    ports.Pinger
}

type App struct {
	Config     *config.Config
	logger     *slog.Logger
	components Components
	closers    []func() error
}

// NewApp: closers вызываются при Shutdown в обратном порядке.
func NewApp(cfg *config.Config, logger *slog.Logger, components Components, closers ...func() error) *App {
	return &App{
		Config:     cfg,
		logger:     logger,
		components: components,
		closers:    closers,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в заданном режиме и блокируется до SIGINT/SIGTERM.
// Режим seed завершается сам после заполнения данных.
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case ModeServer:
		err = runServer(ctx, a.Config, a.components, a.logger)
	case ModeWorker:
		err = runWorker(ctx, a.components, a.logger)
	case ModeSeed:
		err = runSeed(ctx, a.components.Seeder, a.Config.SeedFactoryEntries, a.logger)
	default:
		err = fmt.Errorf("unknown mode %q (use %s, %s or %s)", mode, ModeServer, ModeWorker, ModeSeed)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}
	return err
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
