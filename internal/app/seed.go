package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/GoArmGo/CarbonTracker/internal/usecase"
)

func runSeed(ctx context.Context, seeder *usecase.Seeder, factoryEntries int, logger *slog.Logger) error {
	if seeder == nil {
		return errors.New("seeder is not configured")
	}
	res, err := seeder.Seed(ctx, factoryEntries)
	if err != nil {
		return err
	}
	logger.Info("database seeded",
		"created_users", res.CreatedUsers,
		"skipped_users", res.SkippedUsers,
		"created_entries", res.CreatedEntries,
	)
	return nil
}
