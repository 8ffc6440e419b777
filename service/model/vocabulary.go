package model

import "fmt"

// Vocabulary is the shape shared by every vocabulary table: an append-only
// mapping from a unique URI to a generated id.
type Vocabulary struct {
	ID  int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	URI string `gorm:"column:uri;type:varchar(1023);not null;uniqueIndex" json:"uri"`
}

func (v *Vocabulary) Entry() *Vocabulary { return v }

// VocabularyRow is implemented by the pointer of each per-scope table model.
type VocabularyRow interface {
	TableName() string
	Entry() *Vocabulary
}

type BizStepDBModel struct{ Vocabulary }

func (BizStepDBModel) TableName() string { return "voc_BizStep" }

type DispositionDBModel struct{ Vocabulary }

func (DispositionDBModel) TableName() string { return "voc_Disposition" }

type ReadPointDBModel struct{ Vocabulary }

func (ReadPointDBModel) TableName() string { return "voc_ReadPoint" }

type BizLocationDBModel struct{ Vocabulary }

func (BizLocationDBModel) TableName() string { return "voc_BizLoc" }

type EPCClassDBModel struct{ Vocabulary }

func (EPCClassDBModel) TableName() string { return "voc_EPCClass" }

type BizTransDBModel struct{ Vocabulary }

func (BizTransDBModel) TableName() string { return "voc_BizTrans" }

type BizTransTypeDBModel struct{ Vocabulary }

func (BizTransTypeDBModel) TableName() string { return "voc_BizTransType" }

// NewVocabularyRow returns an empty row bound to the table of scope.
func NewVocabularyRow(scope string) (VocabularyRow, error) {
	switch scope {
	case "BizStep":
		return &BizStepDBModel{}, nil
	case "Disposition":
		return &DispositionDBModel{}, nil
	case "ReadPoint":
		return &ReadPointDBModel{}, nil
	case "BizLocation":
		return &BizLocationDBModel{}, nil
	case "EPCClass":
		return &EPCClassDBModel{}, nil
	case "BizTransaction":
		return &BizTransDBModel{}, nil
	case "BizTransactionType":
		return &BizTransTypeDBModel{}, nil
	}
	return nil, fmt.Errorf("unknown vocabulary scope %q", scope)
}

// BizTransactionDBModel deduplicates (transaction id, transaction type) pairs
// so events can share them through their bizTrans association tables.
type BizTransactionDBModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	BizTrans int64  `gorm:"column:biz_trans;not null;uniqueIndex:idx_biz_transaction_pair,priority:1" json:"biz_trans"`
	Type     *int64 `gorm:"column:type;uniqueIndex:idx_biz_transaction_pair,priority:2" json:"type"`

	BizTransVocabulary *BizTransDBModel     `gorm:"foreignKey:BizTrans" json:"-"`
	TypeVocabulary     *BizTransTypeDBModel `gorm:"foreignKey:Type" json:"-"`
}

func (BizTransactionDBModel) TableName() string { return "BizTransaction" }
