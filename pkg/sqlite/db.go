package sqlite

import (
	"path/filepath"
	"time"

	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/file"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/logger"
	model2 "github.com/IceWhaleTech/CasaOS-EPCISService/service/model"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const dbName = "epcis.db"

var gdb *gorm.DB

// GetDb opens the repository database once per process.
func GetDb(dbPath string) *gorm.DB {
	if gdb != nil {
		return gdb
	}

	db, err := Open(dbPath)
	if err != nil {
		panic(err)
	}

	gdb = db
	return db
}

// Open opens (creating if needed) dbPath/epcis.db and migrates every table.
func Open(dbPath string) (*gorm.DB, error) {
	if err := file.EnsureDir(dbPath); err != nil {
		return nil, err
	}

	dsn := filepath.Join(dbPath, dbName) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	c, err := db.DB()
	if err != nil {
		return nil, err
	}
	c.SetMaxIdleConns(10)
	c.SetMaxOpenConns(1)
	c.SetConnMaxIdleTime(time.Second * 1000)

	if err := Migrate(db); err != nil {
		logger.Error("check or create db error", zap.Any("error", err))
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model2.AllModels()...)
}
