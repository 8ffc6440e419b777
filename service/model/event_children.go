package model

import "time"

type EventEPC struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID int64  `gorm:"not null;index" json:"event_id"`
	EPC     string `gorm:"column:epc;type:varchar(1023);not null" json:"epc"`
}

// EventExtension stores one extension field; exactly one of the value
// columns is set.
type EventExtension struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID    int64      `gorm:"not null;index" json:"event_id"`
	Fieldname  string     `gorm:"column:fieldname;type:varchar(128);not null" json:"fieldname"`
	Prefix     string     `gorm:"type:varchar(32);not null" json:"prefix"`
	Namespace  string     `gorm:"type:varchar(1023)" json:"namespace"`
	IntValue   *int64     `json:"int_value"`
	FloatValue *float64   `json:"float_value"`
	DateValue  *time.Time `gorm:"serializer:unixmilli;type:integer" json:"date_value"`
	StrValue   *string    `gorm:"type:varchar(1024)" json:"str_value"`
}

func (e EventEPC) EPCValue() string { return e.EPC }

func (e EventExtension) Field() EventExtension { return e }

type EventBizTrans struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID    int64 `gorm:"not null;index" json:"event_id"`
	BizTransID int64 `gorm:"column:biz_trans_id;not null" json:"biz_trans_id"`
}

type ObjectEventEPCDBModel struct{ EventEPC }

func (ObjectEventEPCDBModel) TableName() string { return "event_ObjectEvent_EPCs" }

type AggregationEventEPCDBModel struct{ EventEPC }

func (AggregationEventEPCDBModel) TableName() string { return "event_AggregationEvent_EPCs" }

type TransactionEventEPCDBModel struct{ EventEPC }

func (TransactionEventEPCDBModel) TableName() string { return "event_TransactionEvent_EPCs" }

type ObjectEventExtensionDBModel struct{ EventExtension }

func (ObjectEventExtensionDBModel) TableName() string { return "event_ObjectEvent_extensions" }

type AggregationEventExtensionDBModel struct{ EventExtension }

func (AggregationEventExtensionDBModel) TableName() string {
	return "event_AggregationEvent_extensions"
}

type QuantityEventExtensionDBModel struct{ EventExtension }

func (QuantityEventExtensionDBModel) TableName() string { return "event_QuantityEvent_extensions" }

type TransactionEventExtensionDBModel struct{ EventExtension }

func (TransactionEventExtensionDBModel) TableName() string {
	return "event_TransactionEvent_extensions"
}

type ObjectEventBizTransDBModel struct {
	EventBizTrans
	BizTransaction *BizTransactionDBModel `gorm:"foreignKey:BizTransID" json:"-"`
}

func (ObjectEventBizTransDBModel) TableName() string { return "event_ObjectEvent_bizTrans" }

func (b ObjectEventBizTransDBModel) Linked() *BizTransactionDBModel { return b.BizTransaction }

type AggregationEventBizTransDBModel struct {
	EventBizTrans
	BizTransaction *BizTransactionDBModel `gorm:"foreignKey:BizTransID" json:"-"`
}

func (AggregationEventBizTransDBModel) TableName() string { return "event_AggregationEvent_bizTrans" }

func (b AggregationEventBizTransDBModel) Linked() *BizTransactionDBModel { return b.BizTransaction }

type QuantityEventBizTransDBModel struct {
	EventBizTrans
	BizTransaction *BizTransactionDBModel `gorm:"foreignKey:BizTransID" json:"-"`
}

func (QuantityEventBizTransDBModel) TableName() string { return "event_QuantityEvent_bizTrans" }

func (b QuantityEventBizTransDBModel) Linked() *BizTransactionDBModel { return b.BizTransaction }

type TransactionEventBizTransDBModel struct {
	EventBizTrans
	BizTransaction *BizTransactionDBModel `gorm:"foreignKey:BizTransID" json:"-"`
}

func (TransactionEventBizTransDBModel) TableName() string { return "event_TransactionEvent_bizTrans" }

func (b TransactionEventBizTransDBModel) Linked() *BizTransactionDBModel { return b.BizTransaction }

// ChildRows builds the child rows of one event kind. EPC is nil for kinds
// that carry no EPC list.
type ChildRows struct {
	EPC       func(eventID int64, epc string) interface{}
	Extension func(ext EventExtension) interface{}
	BizTrans  func(eventID, bizTransID int64) interface{}
}

// ChildRowsOf returns the row builders for the event table of kind.
func ChildRowsOf(kind string) (ChildRows, bool) {
	switch kind {
	case "ObjectEvent":
		return ChildRows{
			EPC: func(id int64, epc string) interface{} {
				return &ObjectEventEPCDBModel{EventEPC{EventID: id, EPC: epc}}
			},
			Extension: func(ext EventExtension) interface{} { return &ObjectEventExtensionDBModel{ext} },
			BizTrans: func(id, link int64) interface{} {
				return &ObjectEventBizTransDBModel{EventBizTrans: EventBizTrans{EventID: id, BizTransID: link}}
			},
		}, true
	case "AggregationEvent":
		return ChildRows{
			EPC: func(id int64, epc string) interface{} {
				return &AggregationEventEPCDBModel{EventEPC{EventID: id, EPC: epc}}
			},
			Extension: func(ext EventExtension) interface{} { return &AggregationEventExtensionDBModel{ext} },
			BizTrans: func(id, link int64) interface{} {
				return &AggregationEventBizTransDBModel{EventBizTrans: EventBizTrans{EventID: id, BizTransID: link}}
			},
		}, true
	case "QuantityEvent":
		return ChildRows{
			Extension: func(ext EventExtension) interface{} { return &QuantityEventExtensionDBModel{ext} },
			BizTrans: func(id, link int64) interface{} {
				return &QuantityEventBizTransDBModel{EventBizTrans: EventBizTrans{EventID: id, BizTransID: link}}
			},
		}, true
	case "TransactionEvent":
		return ChildRows{
			EPC: func(id int64, epc string) interface{} {
				return &TransactionEventEPCDBModel{EventEPC{EventID: id, EPC: epc}}
			},
			Extension: func(ext EventExtension) interface{} { return &TransactionEventExtensionDBModel{ext} },
			BizTrans: func(id, link int64) interface{} {
				return &TransactionEventBizTransDBModel{EventBizTrans: EventBizTrans{EventID: id, BizTransID: link}}
			},
		}, true
	}
	return ChildRows{}, false
}

// AllModels lists every table in dependency order for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&BizStepDBModel{},
		&DispositionDBModel{},
		&ReadPointDBModel{},
		&BizLocationDBModel{},
		&EPCClassDBModel{},
		&BizTransDBModel{},
		&BizTransTypeDBModel{},
		&BizTransactionDBModel{},
		&ObjectEventDBModel{},
		&AggregationEventDBModel{},
		&QuantityEventDBModel{},
		&TransactionEventDBModel{},
		&ObjectEventEPCDBModel{},
		&AggregationEventEPCDBModel{},
		&TransactionEventEPCDBModel{},
		&ObjectEventExtensionDBModel{},
		&AggregationEventExtensionDBModel{},
		&QuantityEventExtensionDBModel{},
		&TransactionEventExtensionDBModel{},
		&ObjectEventBizTransDBModel{},
		&AggregationEventBizTransDBModel{},
		&QuantityEventBizTransDBModel{},
		&TransactionEventBizTransDBModel{},
	}
}
