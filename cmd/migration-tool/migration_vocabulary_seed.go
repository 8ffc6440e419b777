package main

import (
	"context"
	"os"
	"time"

	"github.com/IceWhaleTech/CasaOS-EPCISService/model"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/sqlite"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/file"
	"github.com/IceWhaleTech/CasaOS-EPCISService/service"
	"gopkg.in/ini.v1"
)

// vocabularySeedTool loads vocabulary URIs from an ini file with one section
// per scope:
//
//	[BizStep]
//	shipping  = urn:epcglobal:cbv:bizstep:shipping
//	receiving = urn:epcglobal:cbv:bizstep:receiving
//
// Key names are free; only values are stored. Once applied the file is
// renamed with an ".applied" suffix so the next run skips it.
type vocabularySeedTool struct {
	dbPath   string
	seedPath string
}

func (u *vocabularySeedTool) IsMigrationNeeded() (bool, error) {
	if _, err := os.Stat(u.seedPath); err != nil {
		_logger.Info("`%s` not found, vocabulary seeding is not needed.", u.seedPath)
		return false, nil
	}
	return true, nil
}

func (u *vocabularySeedTool) PreMigrate() error {
	backup, err := file.Backup(u.seedPath, "."+time.Now().Format("20060102")+".bak")
	if err != nil {
		return err
	}
	_logger.Info("Seed file backed up to %s.", backup)
	return nil
}

func (u *vocabularySeedTool) Migrate() error {
	seeds, err := loadSeeds(u.seedPath)
	if err != nil {
		return err
	}

	db, err := sqlite.Open(u.dbPath)
	if err != nil {
		return err
	}
	defer closeDB(db)

	vocabularyService := service.NewVocabularyService(db, service.InsertMissingVocabulary)
	for _, scope := range model.VocabularyScopes {
		uris, ok := seeds[scope]
		if !ok {
			continue
		}

		_logger.Info("Seeding %d %s entries...", len(uris), scope)
		entries, err := vocabularyService.Seed(context.Background(), scope, uris)
		if err != nil {
			return err
		}
		_logger.Debug("%s now holds %d of the seeded entries", scope, entries)
	}
	return nil
}

func (u *vocabularySeedTool) PostMigrate() error {
	_logger.Info("Renaming %s so it is not applied again...", u.seedPath)
	return os.Rename(u.seedPath, u.seedPath+".applied")
}

func NewVocabularySeedTool(dbPath, seedPath string) MigrationTool {
	return &vocabularySeedTool{dbPath: dbPath, seedPath: seedPath}
}

// loadSeeds reads the seed file. Sections that do not name a scope are
// skipped with a message.
func loadSeeds(path string) (map[model.VocabularyScope][]string, error) {
	seedFile, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	seeds := map[model.VocabularyScope][]string{}
	for _, section := range seedFile.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}

		scope, ok := model.ParseVocabularyScope(section.Name())
		if !ok {
			_logger.Info("Skipping unknown vocabulary scope [%s]", section.Name())
			continue
		}

		for _, key := range section.Keys() {
			if v := key.Value(); len(v) > 0 {
				seeds[scope] = append(seeds[scope], v)
			}
		}
	}
	return seeds, nil
}
