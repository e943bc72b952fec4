package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CameronDeb/meta-aria-2/internal/config"
	logging "github.com/CameronDeb/meta-aria-2/internal/logging"
	"github.com/CameronDeb/meta-aria-2/internal/models"
)

var DB *gorm.DB

func Init(log *zap.Logger) error {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	// Create our custom GORM logger
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Info

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Database connection established successfully.")
	return runMigrations(log)
}

func runMigrations(log *zap.Logger) error {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.SessionRecord{},
		&models.SessionMetricRecord{},
	)
	if err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	log.Info("Database migrations completed successfully.")

	metricsIndex := `CREATE INDEX IF NOT EXISTS idx_session_metrics_query ON session_metric_records (session_id, category, metric_key, created_at DESC);`
	if err := DB.Exec(metricsIndex).Error; err != nil {
		return fmt.Errorf("failed to create custom index on metrics table: %w", err)
	}
	log.Info("Custom indexes ensured successfully.")
	return nil
}
