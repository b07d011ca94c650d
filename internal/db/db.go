package db

import (
	"fmt"
	"time"

	"github.com/snnyvrz/shelfreview/internal/config"
	"github.com/snnyvrz/shelfreview/internal/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultMaxAttempts     = 10
	defaultDelayBetweenTry = 2 * time.Second
)

func dialector(cfg *config.Config) gorm.Dialector {
	if cfg.DBDriver == "sqlite" {
		return sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on")
	}
	return postgres.Open(cfg.DSN())
}

// ConnectWithRetry opens the database and pings it until it answers or the
// attempts run out.
func ConnectWithRetry(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if cfg.GinMode == "release" {
		gormCfg.Logger = logger.Default.LogMode(logger.Error)
	}

	var err error
	for attempt := 1; attempt <= defaultMaxAttempts; attempt++ {
		var database *gorm.DB
		database, err = gorm.Open(dialector(cfg), gormCfg)
		if err == nil {
			sqlDB, dbErr := database.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					log.Info("database connected",
						zap.String("driver", cfg.DBDriver),
						zap.Int("attempt", attempt),
					)
					return database, nil
				}
			} else {
				err = dbErr
			}
		}

		log.Warn("db not ready",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", defaultMaxAttempts),
			zap.Error(err),
		)
		time.Sleep(defaultDelayBetweenTry)
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", defaultMaxAttempts, err)
}

func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(&model.Book{}, &model.Review{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
