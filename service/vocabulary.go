package service

import (
	"fmt"

	"github.com/IceWhaleTech/CasaOS-EPCISService/model"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/logger"
	dbmodel "github.com/IceWhaleTech/CasaOS-EPCISService/service/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VocabularyPolicy decides what happens when a URI is not yet known.
type VocabularyPolicy int

const (
	RejectMissingVocabulary VocabularyPolicy = iota
	InsertMissingVocabulary
)

func PolicyFromConfig(insertMissing bool) VocabularyPolicy {
	if insertMissing {
		return InsertMissingVocabulary
	}
	return RejectMissingVocabulary
}

// VocabularyResolver maps vocabulary URIs to their ids. It keeps no state
// besides its policy; all reads and writes go through the transaction the
// caller passes in, so ids resolved early in a capture are visible to the
// statements that follow.
type VocabularyResolver struct {
	policy VocabularyPolicy
}

func NewVocabularyResolver(policy VocabularyPolicy) *VocabularyResolver {
	return &VocabularyResolver{policy: policy}
}

func (r *VocabularyResolver) Policy() VocabularyPolicy {
	return r.policy
}

// Lookup returns the id of uri in scope without ever inserting.
func (r *VocabularyResolver) Lookup(tx *gorm.DB, scope model.VocabularyScope, uri string) (int64, bool, error) {
	row, err := dbmodel.NewVocabularyRow(string(scope))
	if err != nil {
		return 0, false, err
	}
	result := tx.Where("uri = ?", uri).Limit(1).Find(row)
	if result.Error != nil {
		return 0, false, persistError(row.TableName(), result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, false, nil
	}
	return row.Entry().ID, true, nil
}

// Resolve returns the id of uri in scope, inserting it when the policy allows.
//
// The insert runs in a savepoint. If it fails, most likely because a
// concurrent capture inserted the same uri first, the savepoint is rolled
// back and the lookup is repeated once to pick up the winner's id.
func (r *VocabularyResolver) Resolve(tx *gorm.DB, scope model.VocabularyScope, uri string) (int64, error) {
	id, ok, err := r.Lookup(tx, scope, uri)
	if err != nil {
		return 0, err
	}
	if ok {
		return id, nil
	}

	if r.policy != InsertMissingVocabulary {
		return 0, fmt.Errorf("%w: %s '%s'", ErrPolicyViolation, scope, uri)
	}

	row, err := dbmodel.NewVocabularyRow(string(scope))
	if err != nil {
		return 0, err
	}
	row.Entry().URI = uri

	insertErr := tx.Transaction(func(tx *gorm.DB) error {
		return tx.Create(row).Error
	})
	if insertErr == nil {
		logger.Debug("vocabulary inserted", zap.String("scope", string(scope)), zap.String("uri", uri), zap.Int64("id", row.Entry().ID))
		return row.Entry().ID, nil
	}

	id, ok, err = r.Lookup(tx, scope, uri)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, persistError(row.TableName(), insertErr)
	}
	logger.Info("vocabulary inserted concurrently, using existing id", zap.String("scope", string(scope)), zap.String("uri", uri), zap.Int64("id", id), zap.Error(insertErr))
	return id, nil
}

// ResolveOptional resolves uri unless it is empty, in which case it returns nil.
func (r *VocabularyResolver) ResolveOptional(tx *gorm.DB, scope model.VocabularyScope, uri string) (*int64, error) {
	if uri == "" {
		return nil, nil
	}
	id, err := r.Resolve(tx, scope, uri)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// URIOf is the reverse of Lookup, used when reading stored events back.
func (r *VocabularyResolver) URIOf(tx *gorm.DB, scope model.VocabularyScope, id *int64) (string, error) {
	if id == nil {
		return "", nil
	}
	row, err := dbmodel.NewVocabularyRow(string(scope))
	if err != nil {
		return "", err
	}
	if err := tx.Where("id = ?", *id).Take(row).Error; err != nil {
		return "", persistError(row.TableName(), err)
	}
	return row.Entry().URI, nil
}
