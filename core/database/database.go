package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes a connection to the MySQL database.
// It returns a *gorm.DB connection or an error if the connection fails.
// The connection is optional for the service; callers should degrade to a
// non-database document store when it fails.
func Connect(cfg Config) (*gorm.DB, error) {
	// Special characters in the password must be URL encoded for the DSN.
	userInfo := url.UserPassword(cfg.User, cfg.Password).String()

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)

	// Suppress GORM logging; the application logger reports what matters.
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Verify the connection up front with the same timeout as the DSN.
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
