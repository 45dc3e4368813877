package config

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config is the process configuration, read from the environment (a .env file
// is loaded automatically when present).
type Config struct {
	// DatabaseURL selects postgres when set; otherwise DatabasePath selects a
	// sqlite file.
	DatabaseURL  string
	DatabasePath string
	RedisAddr    string
	SyncSchedule string
}

func LoadConfig() *Config {
	cnf := &Config{
		DatabaseURL:  os.Getenv("FA_DB_URL"),
		DatabasePath: os.Getenv("FA_DB_PATH"),
		RedisAddr:    os.Getenv("FA_REDIS_ADDR"),
		SyncSchedule: os.Getenv("FA_SYNC_SCHEDULE"),
	}
	if cnf.DatabasePath == "" {
		cnf.DatabasePath = "finassist.db"
	}
	if cnf.SyncSchedule == "" {
		cnf.SyncSchedule = "@every 1h"
	}
	return cnf
}

// GetDb opens the configured database connection.
func GetDb(cnf *Config) *gorm.DB {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var db *gorm.DB
	var err error
	if cnf.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cnf.DatabaseURL), gormConfig)
	} else {
		db, err = gorm.Open(sqlite.Open(cnf.DatabasePath), gormConfig)
	}
	if err != nil {
		logrus.Fatalf("error connecting to database: %v", err)
	}

	return db
}
