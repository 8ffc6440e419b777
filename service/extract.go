package service

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/IceWhaleTech/CasaOS-EPCISService/model"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/timeparser"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/logger"
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// EventExtractor turns one event element of an EPCIS document into a
// model.StructuredEvent. It performs no I/O, so every structural problem is
// found before anything is written.
type EventExtractor struct{}

func NewEventExtractor() *EventExtractor {
	return &EventExtractor{}
}

// extracted collects the child fields of an event before they are assembled
// into the struct of the event's kind.
type extracted struct {
	header   model.EventHeader
	hasTime  bool
	action   model.Action
	parentID string
	epcClass string
	quantity *int64
	epcs     []string
	present  map[string]bool
}

// Extract reads el, an element of doc's EventList.
func (x *EventExtractor) Extract(doc *etree.Document, el *etree.Element) (model.StructuredEvent, error) {
	tag := el.FullTag()
	kind, ok := model.ParseEventKind(tag)
	if !ok {
		return nil, &ExtractionError{Err: ErrUnknownEventKind, Event: tag, Index: -1}
	}
	if len(el.ChildElements()) == 0 {
		return nil, &ExtractionError{Err: ErrEmptyEvent, Event: tag, Index: -1}
	}

	f := &extracted{present: map[string]bool{}}
	for _, child := range el.ChildElements() {
		if err := x.field(doc, f, child); err != nil {
			if xerr, ok := err.(*ExtractionError); ok {
				xerr.Event = tag
			}
			return nil, err
		}
	}

	if !f.hasTime {
		return nil, &ExtractionError{Err: ErrInvalidTimestamp, Event: tag, Index: -1, Field: "eventTime", Detail: "missing"}
	}

	return f.assemble(kind), nil
}

func (x *EventExtractor) field(doc *etree.Document, f *extracted, child *etree.Element) error {
	name := child.FullTag()
	logger.Debug("handling event field", zap.String("tag", name))
	f.present[name] = true

	switch name {
	case "eventTime":
		ts, err := timeparser.Parse(textContent(child))
		if err != nil {
			return &ExtractionError{Err: ErrInvalidTimestamp, Index: -1, Field: name, Cause: err}
		}
		f.header.EventTime = ts.Time
		f.hasTime = true
	case "recordTime":
		// assigned by the repository when the event is stored
		logger.Debug("ignoring client supplied recordTime", zap.String("value", textContent(child)))
	case "eventTimeZoneOffset":
		f.header.EventTimeZoneOffset = textContent(child)
	case "epcList", "childEPCs":
		epcs, err := extractEPCs(child)
		if err != nil {
			return err
		}
		f.epcs = epcs
	case "bizTransactionList":
		list, err := extractBizTransactions(child)
		if err != nil {
			return err
		}
		f.header.BizTransactions = list
	case "action":
		action := model.Action(textContent(child))
		if !action.Valid() {
			return &ExtractionError{Err: ErrInvalidAction, Index: -1, Field: name, Detail: "'" + string(action) + "'"}
		}
		f.action = action
	case "bizStep":
		v, err := uriContent(child, name)
		if err != nil {
			return err
		}
		f.header.BizStep = v
	case "disposition":
		v, err := uriContent(child, name)
		if err != nil {
			return err
		}
		f.header.Disposition = v
	case "readPoint", "bizLocation":
		id := child.FindElement(".//id")
		if id == nil {
			return &ExtractionError{Err: ErrInvalidURI, Index: -1, Field: name, Detail: "missing id element"}
		}
		v, err := uriContent(id, name)
		if err != nil {
			return err
		}
		if name == "readPoint" {
			f.header.ReadPoint = v
		} else {
			f.header.BizLocation = v
		}
	case "epcClass":
		v, err := uriContent(child, name)
		if err != nil {
			return err
		}
		f.epcClass = v
	case "quantity":
		text := textContent(child)
		q, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return &ExtractionError{Err: ErrInvalidQuantity, Index: -1, Field: name, Detail: "'" + text + "'"}
		}
		f.quantity = &q
	case "parentID":
		f.parentID = textContent(child)
	default:
		if child.Space == "" {
			return &ExtractionError{Err: ErrUnknownFieldTag, Index: -1, Field: name}
		}
		logger.Debug("treating unknown tag as extension", zap.String("tag", name))
		f.header.Extensions = append(f.header.Extensions, model.ExtensionField{
			Prefix:    child.Space,
			Namespace: namespaceOf(doc, child),
			Name:      child.Tag,
			Value:     typedValue(textContent(child)),
		})
	}
	return nil
}

func (f *extracted) assemble(kind model.EventKind) model.StructuredEvent {
	switch kind {
	case model.KindObjectEvent:
		f.drop(kind, "parentID", "epcClass", "quantity")
		return &model.ObjectEvent{EventHeader: f.header, Action: f.action, EPCs: f.epcs}
	case model.KindAggregationEvent:
		f.drop(kind, "epcClass", "quantity")
		return &model.AggregationEvent{EventHeader: f.header, Action: f.action, ParentID: f.parentID, ChildEPCs: f.epcs}
	case model.KindQuantityEvent:
		f.drop(kind, "action", "parentID", "epcList", "childEPCs")
		return &model.QuantityEvent{EventHeader: f.header, EPCClass: f.epcClass, Quantity: f.quantity}
	default:
		f.drop(kind, "parentID", "epcClass", "quantity")
		return &model.TransactionEvent{EventHeader: f.header, Action: f.action, EPCs: f.epcs}
	}
}

// drop logs fields that were supplied but have no column for kind.
func (f *extracted) drop(kind model.EventKind, fields ...string) {
	for _, name := range fields {
		if f.present[name] {
			logger.Warn("field not stored for this event kind", zap.String("kind", string(kind)), zap.String("field", name))
		}
	}
}

func extractEPCs(list *etree.Element) ([]string, error) {
	epcs := make([]string, 0, len(list.ChildElements()))
	for _, child := range list.ChildElements() {
		if child.FullTag() != "epc" {
			return nil, &ExtractionError{Err: ErrUnknownChildTag, Index: -1, Field: list.FullTag(), Detail: "'" + child.FullTag() + "'"}
		}
		epc, err := requiredURIContent(child, list.FullTag())
		if err != nil {
			return nil, err
		}
		epcs = append(epcs, epc)
	}
	return epcs, nil
}

func extractBizTransactions(list *etree.Element) ([]model.BizTransaction, error) {
	var out []model.BizTransaction
	for _, child := range list.ChildElements() {
		if child.FullTag() != "bizTransaction" {
			return nil, &ExtractionError{Err: ErrUnknownChildTag, Index: -1, Field: list.FullTag(), Detail: "'" + child.FullTag() + "'"}
		}
		id, err := requiredURIContent(child, "bizTransaction")
		if err != nil {
			return nil, err
		}
		typ := strings.TrimSpace(child.SelectAttrValue("type", ""))
		if typ != "" && !isURI(typ) {
			return nil, &ExtractionError{Err: ErrInvalidURI, Index: -1, Field: "bizTransaction@type", Detail: "'" + typ + "'"}
		}
		out = append(out, model.BizTransaction{Type: typ, ID: id})
	}
	return out, nil
}

// textContent concatenates all character data below el, like DOM textContent.
func textContent(el *etree.Element) string {
	var b strings.Builder
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return strings.TrimSpace(b.String())
}

func uriContent(el *etree.Element, field string) (string, error) {
	v := textContent(el)
	if v != "" && !isURI(v) {
		return "", &ExtractionError{Err: ErrInvalidURI, Index: -1, Field: field, Detail: "'" + v + "'"}
	}
	return v, nil
}

// requiredURIContent is uriContent for identifiers that cannot be absent.
func requiredURIContent(el *etree.Element, field string) (string, error) {
	v, err := uriContent(el, field)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", &ExtractionError{Err: ErrInvalidURI, Index: -1, Field: field, Detail: "empty"}
	}
	return v, nil
}

func isURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

// namespaceOf resolves the prefix of el against the root element's
// declarations first, then against any declaration in scope.
func namespaceOf(doc *etree.Document, el *etree.Element) string {
	if root := doc.Root(); root != nil {
		if ns := root.SelectAttrValue("xmlns:"+el.Space, ""); ns != "" {
			return ns
		}
	}
	return el.NamespaceURI()
}

// typedValue picks the narrowest representation of an extension value:
// integer, then float, then timestamp, otherwise string.
func typedValue(s string) model.ExtensionValue {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return model.IntValue(i)
	}
	if looksNumeric(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return model.FloatValue(f)
		}
	}
	if strings.Contains(s, "T") && len(s) >= len("YYYY-MM-DDThh:mm:ss") {
		if ts, err := timeparser.Parse(s); err == nil {
			return model.TimeValue(ts.Time)
		}
	}
	return model.StringValue(s)
}

// looksNumeric keeps words like "NaN" or "Inf" away from ParseFloat.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789+-.eE", c) {
			return false
		}
	}
	return true
}
