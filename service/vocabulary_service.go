package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/IceWhaleTech/CasaOS-EPCISService/model"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrVocabularyNotFound = errors.New("vocabulary not found")

type VocabularyService interface {
	GetID(ctx context.Context, scope model.VocabularyScope, uri string) (int64, error)
	GetURI(ctx context.Context, scope model.VocabularyScope, id int64) (string, error)
	Seed(ctx context.Context, scope model.VocabularyScope, uris []string) (int, error)
}

type vocabularyService struct {
	db    *gorm.DB
	vocab *VocabularyResolver
}

func (v *vocabularyService) GetID(ctx context.Context, scope model.VocabularyScope, uri string) (int64, error) {
	id, ok, err := v.vocab.Lookup(v.db.WithContext(ctx), scope, uri)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrVocabularyNotFound
	}
	return id, nil
}

func (v *vocabularyService) GetURI(ctx context.Context, scope model.VocabularyScope, id int64) (string, error) {
	uri, err := v.vocab.URIOf(v.db.WithContext(ctx), scope, &id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrVocabularyNotFound
	}
	return uri, err
}

// Seed inserts every uri of scope that is not yet known, regardless of the
// capture policy. It returns how many entries the scope holds of uris.
func (v *vocabularyService) Seed(ctx context.Context, scope model.VocabularyScope, uris []string) (int, error) {
	seeder := NewVocabularyResolver(InsertMissingVocabulary)
	seen := map[int64]struct{}{}
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, uri := range uris {
			if !isURI(uri) {
				return fmt.Errorf("%w: %s '%s'", ErrInvalidURI, scope, uri)
			}
			id, err := seeder.Resolve(tx, scope, uri)
			if err != nil {
				return err
			}
			seen[id] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logger.Info("vocabulary seeded", zap.String("scope", string(scope)), zap.Int("entries", len(seen)))
	return len(seen), nil
}

func NewVocabularyService(db *gorm.DB, policy VocabularyPolicy) VocabularyService {
	return &vocabularyService{db: db, vocab: NewVocabularyResolver(policy)}
}
