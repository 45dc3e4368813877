package tester

import (
	"os"
	"path/filepath"

	"github.com/finassist/finassist/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db      *gorm.DB
	testDir string
)

// Setup opens a fresh sqlite database in a temporary directory and migrates
// the schema. Each call discards the previous database.
func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	dir, err := os.MkdirTemp("", "finassist-test-")
	if err != nil {
		panic(err)
	}
	testDir = dir

	db, err = gorm.Open(sqlite.Open(filepath.Join(dir, "finassist.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

func RemoveDBFile() {
	if testDir == "" {
		return
	}
	err := os.RemoveAll(testDir)
	if err != nil {
		panic(err)
	}
	testDir = ""
}
