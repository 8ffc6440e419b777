package model

import "time"

// EventDBModel holds the columns shared by the four event tables.
type EventDBModel struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EventTime           time.Time `gorm:"serializer:unixmilli;type:integer;not null" json:"event_time"`
	RecordTime          time.Time `gorm:"serializer:unixmilli;type:integer;not null" json:"record_time"`
	EventTimeZoneOffset *string   `gorm:"type:varchar(8)" json:"event_time_zone_offset"`
	BizStep             *int64    `json:"biz_step"`
	Disposition         *int64    `json:"disposition"`
	ReadPoint           *int64    `json:"read_point"`
	BizLocation         *int64    `json:"biz_location"`
}

func (e *EventDBModel) Base() *EventDBModel { return e }

// EventRow is implemented by the pointer of each event table model.
type EventRow interface {
	TableName() string
	Base() *EventDBModel
}

type ObjectEventDBModel struct {
	EventDBModel
	Action *string `gorm:"type:varchar(8)" json:"action"`

	BizStepVocabulary     *BizStepDBModel     `gorm:"foreignKey:BizStep" json:"-"`
	DispositionVocabulary *DispositionDBModel `gorm:"foreignKey:Disposition" json:"-"`
	ReadPointVocabulary   *ReadPointDBModel   `gorm:"foreignKey:ReadPoint" json:"-"`
	BizLocationVocabulary *BizLocationDBModel `gorm:"foreignKey:BizLocation" json:"-"`

	EPCs            []ObjectEventEPCDBModel       `gorm:"foreignKey:EventID" json:"-"`
	Extensions      []ObjectEventExtensionDBModel `gorm:"foreignKey:EventID" json:"-"`
	BizTransactions []ObjectEventBizTransDBModel  `gorm:"foreignKey:EventID" json:"-"`
}

func (ObjectEventDBModel) TableName() string { return "event_ObjectEvent" }

type AggregationEventDBModel struct {
	EventDBModel
	Action   *string `gorm:"type:varchar(8)" json:"action"`
	ParentID *string `gorm:"type:varchar(1023)" json:"parent_id"`

	BizStepVocabulary     *BizStepDBModel     `gorm:"foreignKey:BizStep" json:"-"`
	DispositionVocabulary *DispositionDBModel `gorm:"foreignKey:Disposition" json:"-"`
	ReadPointVocabulary   *ReadPointDBModel   `gorm:"foreignKey:ReadPoint" json:"-"`
	BizLocationVocabulary *BizLocationDBModel `gorm:"foreignKey:BizLocation" json:"-"`

	EPCs            []AggregationEventEPCDBModel       `gorm:"foreignKey:EventID" json:"-"`
	Extensions      []AggregationEventExtensionDBModel `gorm:"foreignKey:EventID" json:"-"`
	BizTransactions []AggregationEventBizTransDBModel  `gorm:"foreignKey:EventID" json:"-"`
}

func (AggregationEventDBModel) TableName() string { return "event_AggregationEvent" }

type QuantityEventDBModel struct {
	EventDBModel
	EPCClass *int64 `gorm:"column:epc_class" json:"epc_class"`
	Quantity *int64 `json:"quantity"`

	BizStepVocabulary     *BizStepDBModel     `gorm:"foreignKey:BizStep" json:"-"`
	DispositionVocabulary *DispositionDBModel `gorm:"foreignKey:Disposition" json:"-"`
	ReadPointVocabulary   *ReadPointDBModel   `gorm:"foreignKey:ReadPoint" json:"-"`
	BizLocationVocabulary *BizLocationDBModel `gorm:"foreignKey:BizLocation" json:"-"`
	EPCClassVocabulary    *EPCClassDBModel    `gorm:"foreignKey:EPCClass" json:"-"`

	Extensions      []QuantityEventExtensionDBModel `gorm:"foreignKey:EventID" json:"-"`
	BizTransactions []QuantityEventBizTransDBModel  `gorm:"foreignKey:EventID" json:"-"`
}

func (QuantityEventDBModel) TableName() string { return "event_QuantityEvent" }

type TransactionEventDBModel struct {
	EventDBModel
	Action *string `gorm:"type:varchar(8)" json:"action"`

	BizStepVocabulary     *BizStepDBModel     `gorm:"foreignKey:BizStep" json:"-"`
	DispositionVocabulary *DispositionDBModel `gorm:"foreignKey:Disposition" json:"-"`
	ReadPointVocabulary   *ReadPointDBModel   `gorm:"foreignKey:ReadPoint" json:"-"`
	BizLocationVocabulary *BizLocationDBModel `gorm:"foreignKey:BizLocation" json:"-"`

	EPCs            []TransactionEventEPCDBModel       `gorm:"foreignKey:EventID" json:"-"`
	Extensions      []TransactionEventExtensionDBModel `gorm:"foreignKey:EventID" json:"-"`
	BizTransactions []TransactionEventBizTransDBModel  `gorm:"foreignKey:EventID" json:"-"`
}

func (TransactionEventDBModel) TableName() string { return "event_TransactionEvent" }
