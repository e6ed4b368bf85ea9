package gormdb

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/config"
	"github.com/GoArmGo/CarbonTracker/internal/database/client"
	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLitePrefix — префикс DATABASE_URL, переключающий GORM на SQLite.
const SQLitePrefix = "sqlite:"

// Open открывает GORM-соединение по DATABASE_URL.
// Для PostgreSQL схема накатывается через golang-migrate, для SQLite — через AutoMigrate.
func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	start := time.Now()
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}

	if path, ok := strings.CutPrefix(cfg.DatabaseURL, SQLitePrefix); ok {
		db, err := OpenSQLite(path, gormCfg)
		if err != nil {
			return nil, err
		}
		logger.Info("GORM SQLite storage opened", "duration_ms", time.Since(start).Milliseconds())
		return db, nil
	}

	if err := client.ApplyMigrations(cfg.MigrationsPath, cfg.DatabaseURL, logger); err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	if err != nil {
		logger.Error("failed to open GORM PostgreSQL connection", "error", err)
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("GORM PostgreSQL storage opened", "duration_ms", time.Since(start).Milliseconds())
	return db, nil
}

// OpenSQLite открывает SQLite по DSN и создаёт таблицы.
func OpenSQLite(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{TranslateError: true, Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	}
	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open gorm sqlite: %w", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.FootprintEntry{}); err != nil {
		return nil, fmt.Errorf("auto migrate sqlite: %w", err)
	}
	return db, nil
}
