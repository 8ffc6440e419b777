package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/IceWhaleTech/CasaOS-EPCISService/common"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/config"
)

const defaultSeedFilePath = "/etc/casaos/epcis-vocabulary.conf"

// MigrationTool is one step of bringing an installation up to date.
type MigrationTool interface {
	IsMigrationNeeded() (bool, error)
	PreMigrate() error
	Migrate() error
	PostMigrate() error
}

var _logger *Logger

func main() {
	versionFlag := flag.Bool("v", false, "version")
	debugFlag := flag.Bool("d", false, "debug")
	configFlag := flag.String("c", "", "config address")
	dbFlag := flag.String("db", "", "db path")
	seedFlag := flag.String("seed", defaultSeedFilePath, "vocabulary seed file")
	flag.Parse()

	if *versionFlag {
		fmt.Println(common.Version)
		os.Exit(0)
	}

	_logger = NewLogger()

	if *debugFlag {
		_logger.DebugMode = true
	}

	config.InitSetup(*configFlag)

	dbPath := *dbFlag
	if len(dbPath) == 0 {
		dbPath = config.AppInfo.DBPath
	}

	migrationTools := []MigrationTool{
		NewSchemaMigrationTool(dbPath),
		NewVocabularySeedTool(dbPath, *seedFlag),
	}

	if err := run(migrationTools); err != nil {
		_logger.Error("Migration failed: %s", err)
		os.Exit(1)
	}
}

// run applies every tool that reports work to do, in order.
func run(migrationTools []MigrationTool) error {
	ran := 0
	for _, tool := range migrationTools {
		migrationNeeded, err := tool.IsMigrationNeeded()
		if err != nil {
			return err
		}

		if !migrationNeeded {
			continue
		}

		if err := tool.PreMigrate(); err != nil {
			return err
		}

		if err := tool.Migrate(); err != nil {
			return err
		}

		if err := tool.PostMigrate(); err != nil {
			return err
		}
		ran++
	}

	if ran == 0 {
		_logger.Info("No migration to proceed.")
	}
	return nil
}
