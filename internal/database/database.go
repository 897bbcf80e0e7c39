package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"talentd/internal/config"
)

// InitDatabase opens the PostgreSQL connection from config and returns a GORM handle.
func InitDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap db: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// AutoMigrate runs schema migration for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Job{},
		&Article{},
		&Roadmap{},
		&RoadmapReview{},
		&DsaProblem{},
		&DsaTopic{},
		&DsaCompany{},
		&DsaSheet{},
		&SolvedProblem{},
		&Scholarship{},
		&Template{},
		&Portfolio{},
		&PortfolioShare{},
		&ResumeAnalysis{},
	)
}
