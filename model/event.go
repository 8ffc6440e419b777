package model

import (
	"encoding/json"
	"time"

	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/timeparser"
)

type EventKind string

const (
	KindObjectEvent      EventKind = "ObjectEvent"
	KindAggregationEvent EventKind = "AggregationEvent"
	KindQuantityEvent    EventKind = "QuantityEvent"
	KindTransactionEvent EventKind = "TransactionEvent"
)

var EventKinds = []EventKind{KindObjectEvent, KindAggregationEvent, KindQuantityEvent, KindTransactionEvent}

func ParseEventKind(s string) (EventKind, bool) {
	for _, k := range EventKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

type Action string

const (
	ActionAdd     Action = "ADD"
	ActionObserve Action = "OBSERVE"
	ActionDelete  Action = "DELETE"
)

func (a Action) Valid() bool {
	switch a {
	case ActionAdd, ActionObserve, ActionDelete:
		return true
	}
	return false
}

// StructuredEvent is one extracted event. It is implemented by *ObjectEvent,
// *AggregationEvent, *QuantityEvent and *TransactionEvent only.
type StructuredEvent interface {
	Kind() EventKind
	Header() *EventHeader
	structuredEvent()
}

// EventHeader holds the fields every event kind shares. Empty vocabulary
// fields are absent and stored as NULL.
type EventHeader struct {
	EventTime           time.Time        `json:"eventTime"`
	RecordTime          *time.Time       `json:"recordTime,omitempty"`
	EventTimeZoneOffset string           `json:"eventTimeZoneOffset,omitempty"`
	BizStep             string           `json:"bizStep,omitempty"`
	Disposition         string           `json:"disposition,omitempty"`
	ReadPoint           string           `json:"readPoint,omitempty"`
	BizLocation         string           `json:"bizLocation,omitempty"`
	BizTransactions     []BizTransaction `json:"bizTransactionList,omitempty"`
	Extensions          []ExtensionField `json:"extensions,omitempty"`
}

func (h *EventHeader) Header() *EventHeader { return h }

type ObjectEvent struct {
	EventHeader
	Action Action   `json:"action"`
	EPCs   []string `json:"epcList,omitempty"`
}

type AggregationEvent struct {
	EventHeader
	Action    Action   `json:"action"`
	ParentID  string   `json:"parentID,omitempty"`
	ChildEPCs []string `json:"childEPCs,omitempty"`
}

type QuantityEvent struct {
	EventHeader
	EPCClass string `json:"epcClass,omitempty"`
	Quantity *int64 `json:"quantity,omitempty"`
}

type TransactionEvent struct {
	EventHeader
	Action Action   `json:"action"`
	EPCs   []string `json:"epcList,omitempty"`
}

func (*ObjectEvent) Kind() EventKind      { return KindObjectEvent }
func (*AggregationEvent) Kind() EventKind { return KindAggregationEvent }
func (*QuantityEvent) Kind() EventKind    { return KindQuantityEvent }
func (*TransactionEvent) Kind() EventKind { return KindTransactionEvent }

func (*ObjectEvent) structuredEvent()      {}
func (*AggregationEvent) structuredEvent() {}
func (*QuantityEvent) structuredEvent()    {}
func (*TransactionEvent) structuredEvent() {}

// BizTransaction pairs a transaction type URI with a transaction id URI.
// Type may be empty.
type BizTransaction struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id"`
}

// ExtensionField is a namespace-qualified field outside the core event schema.
type ExtensionField struct {
	Prefix    string         `json:"prefix"`
	Namespace string         `json:"namespace"`
	Name      string         `json:"name"`
	Value     ExtensionValue `json:"value"`
}

// ExtensionValue is exactly one of IntValue, FloatValue, TimeValue or StringValue.
type ExtensionValue interface {
	extensionValue()
}

type (
	IntValue    int64
	FloatValue  float64
	TimeValue   time.Time
	StringValue string
)

func (IntValue) extensionValue()    {}
func (FloatValue) extensionValue()  {}
func (TimeValue) extensionValue()   {}
func (StringValue) extensionValue() {}

func (v TimeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(timeparser.Format(time.Time(v)))
}

// EventID identifies a stored event: ids are only unique within a kind.
type EventID struct {
	Kind EventKind `json:"kind"`
	ID   int64     `json:"id"`
}

// CaptureReport summarizes one successfully captured document.
type CaptureReport struct {
	RequestID string            `json:"request_id"`
	Captured  int               `json:"captured"`
	PerKind   map[EventKind]int `json:"per_kind"`
	EventIDs  []EventID         `json:"event_ids"`
}
