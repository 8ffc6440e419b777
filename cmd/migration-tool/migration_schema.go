package main

import (
	"path/filepath"
	"time"

	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/sqlite"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/file"
	model2 "github.com/IceWhaleTech/CasaOS-EPCISService/service/model"
	glebarez "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const dbFileName = "epcis.db"

type schemaMigrationTool struct {
	dbPath string
}

// IsMigrationNeeded reports whether the database is missing or lacks a table.
func (u *schemaMigrationTool) IsMigrationNeeded() (bool, error) {
	dbFile := filepath.Join(u.dbPath, dbFileName)
	if !file.Exists(dbFile) {
		_logger.Info("`%s` not found, schema will be created.", dbFile)
		return true, nil
	}

	db, err := gorm.Open(glebarez.Open(dbFile), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return false, err
	}
	defer closeDB(db)

	for _, m := range model2.AllModels() {
		if !db.Migrator().HasTable(m) {
			_logger.Info("Table for %T is missing, schema migration is needed.", m)
			return true, nil
		}
	}

	_logger.Debug("Schema of `%s` is up to date.", dbFile)
	return false, nil
}

func (u *schemaMigrationTool) PreMigrate() error {
	dbFile := filepath.Join(u.dbPath, dbFileName)
	if !file.Exists(dbFile) {
		return file.EnsureDir(u.dbPath)
	}

	backup, err := file.Backup(dbFile, "."+time.Now().Format("20060102")+".bak")
	if err != nil {
		return err
	}
	_logger.Info("Database backed up to %s.", backup)
	return nil
}

func (u *schemaMigrationTool) Migrate() error {
	_logger.Info("Migrating schema in %s...", u.dbPath)
	db, err := sqlite.Open(u.dbPath)
	if err != nil {
		return err
	}
	closeDB(db)
	return nil
}

func (u *schemaMigrationTool) PostMigrate() error {
	_logger.Info("Schema migration finished.")
	return nil
}

func NewSchemaMigrationTool(dbPath string) MigrationTool {
	return &schemaMigrationTool{dbPath: dbPath}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
