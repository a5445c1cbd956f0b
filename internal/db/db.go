package db

import (
	"fmt"
	"runtime"
	"time"

	"github.com/USA-RedDragon/trng-client/internal/config"
	"github.com/USA-RedDragon/trng-client/internal/db/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MakeDB(cfg *config.Config) (db *gorm.DB, err error) {
	var dialector gorm.Dialector
	database := cfg.History.Database
	switch database.Driver {
	case config.DatabaseDriverSQLite:
		dialector = sqlite.Open(database.Database + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	case config.DatabaseDriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=True&%s",
			database.Username,
			database.Password,
			database.Host,
			database.Port,
			database.Database,
			database.ExtraParameters)
		dialector = mysql.Open(dsn)
	case config.DatabaseDriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s %s",
			database.Host,
			database.Port,
			database.Username,
			database.Password,
			database.Database,
			database.ExtraParameters)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver: %s", database.Driver)
	}

	db, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return db, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.AutoMigrate(&models.SignedResult{})
	if err != nil {
		return db, fmt.Errorf("failed to migrate database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return db, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB.SetMaxIdleConns(runtime.GOMAXPROCS(0))
	const connsPerCPU = 10
	sqlDB.SetMaxOpenConns(runtime.GOMAXPROCS(0) * connsPerCPU)
	const maxIdleTime = 10 * time.Minute
	sqlDB.SetConnMaxIdleTime(maxIdleTime)

	return
}
