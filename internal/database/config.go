package database

import (
	"fmt"
	"time"

	"cardiomed/internal/config"
	"cardiomed/internal/models"
	"cardiomed/internal/utils"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// notifierPollQuery is logged on every notifier tick and would drown the log
const notifierPollQuery = `FROM "bp_check_reminders" WHERE is_completed = false AND reminder_datetime >=`

// Open connects to PostgreSQL, configures the pool and migrates the schema
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gormLogger := utils.NewGormLogger(log.Named("gorm"), cfg.SlowThreshold, notifierPollQuery).
		LogMode(logger.Warn)

	gormConfig := &gorm.Config{
		Logger:                                   gormLogger,
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   false,
		DisableForeignKeyConstraintWhenMigrating: false,
	}

	retries := cfg.ConnectRetries
	if retries <= 0 {
		retries = 1
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < retries; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			break
		}
		log.Warn("Database connection attempt failed", zap.Int("attempt", i+1), zap.Error(err))
		if i < retries-1 {
			log.Info("Retrying database connection", zap.Duration("in", cfg.RetryDelay))
			time.Sleep(cfg.RetryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", retries, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("Database connection established and migrations completed")
	return db, nil
}

// Migrate creates or updates every table the service owns
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.BloodPressureReading{},
		&models.BPCheckReminder{},
		&models.MedicationReminder{},
		&models.DoctorAppointmentReminder{},
		&models.WorkoutReminder{},
		&models.ReminderSent{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
