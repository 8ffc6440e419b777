package service

import (
	"fmt"
	"time"

	"github.com/IceWhaleTech/CasaOS-EPCISService/model"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/logger"
	dbmodel "github.com/IceWhaleTech/CasaOS-EPCISService/service/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventPersister writes one StructuredEvent and its child rows.
type EventPersister struct {
	vocab *VocabularyResolver
	now   func() time.Time
}

func NewEventPersister(vocab *VocabularyResolver) *EventPersister {
	return &EventPersister{vocab: vocab, now: time.Now}
}

// Persist stores ev inside a savepoint of tx, so a failure leaves no row of
// ev behind while earlier work in tx survives until the caller decides.
func (p *EventPersister) Persist(tx *gorm.DB, ev model.StructuredEvent) (model.EventID, error) {
	var id model.EventID
	err := tx.Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = p.persist(tx, ev)
		return err
	})
	if err != nil {
		return model.EventID{}, err
	}
	return id, nil
}

func (p *EventPersister) persist(tx *gorm.DB, ev model.StructuredEvent) (model.EventID, error) {
	if ev == nil {
		return model.EventID{}, fmt.Errorf("nil event")
	}
	h := ev.Header()
	base, err := p.baseRow(tx, h)
	if err != nil {
		return model.EventID{}, err
	}

	var (
		row  dbmodel.EventRow
		epcs []string
	)
	switch e := ev.(type) {
	case *model.ObjectEvent:
		row = &dbmodel.ObjectEventDBModel{EventDBModel: base, Action: nullable(string(e.Action))}
		epcs = e.EPCs
	case *model.AggregationEvent:
		row = &dbmodel.AggregationEventDBModel{EventDBModel: base, Action: nullable(string(e.Action)), ParentID: nullable(e.ParentID)}
		epcs = e.ChildEPCs
	case *model.QuantityEvent:
		epcClass, err := p.vocab.ResolveOptional(tx, model.ScopeEPCClass, e.EPCClass)
		if err != nil {
			return model.EventID{}, err
		}
		row = &dbmodel.QuantityEventDBModel{EventDBModel: base, EPCClass: epcClass, Quantity: e.Quantity}
	case *model.TransactionEvent:
		row = &dbmodel.TransactionEventDBModel{EventDBModel: base, Action: nullable(string(e.Action))}
		epcs = e.EPCs
	default:
		return model.EventID{}, fmt.Errorf("unsupported event type %T", ev)
	}

	if err := tx.Create(row).Error; err != nil {
		return model.EventID{}, persistError(row.TableName(), err)
	}
	eventID := row.Base().ID

	children, ok := dbmodel.ChildRowsOf(string(ev.Kind()))
	if !ok {
		return model.EventID{}, fmt.Errorf("no child tables for %s", ev.Kind())
	}

	if children.EPC != nil {
		for _, epc := range epcs {
			if err := create(tx, children.EPC(eventID, epc)); err != nil {
				return model.EventID{}, err
			}
		}
	}

	for _, ext := range h.Extensions {
		if err := create(tx, children.Extension(extensionRow(eventID, ext))); err != nil {
			return model.EventID{}, err
		}
	}

	for _, bt := range h.BizTransactions {
		link, err := p.bizTransaction(tx, bt)
		if err != nil {
			return model.EventID{}, err
		}
		if err := create(tx, children.BizTrans(eventID, link)); err != nil {
			return model.EventID{}, err
		}
	}

	logger.Debug("event persisted", zap.String("kind", string(ev.Kind())), zap.Int64("id", eventID),
		zap.Int("epcs", len(epcs)), zap.Int("extensions", len(h.Extensions)), zap.Int("biz_transactions", len(h.BizTransactions)))

	return model.EventID{Kind: ev.Kind(), ID: eventID}, nil
}

func (p *EventPersister) baseRow(tx *gorm.DB, h *model.EventHeader) (dbmodel.EventDBModel, error) {
	base := dbmodel.EventDBModel{
		EventTime:           h.EventTime,
		RecordTime:          p.now().UTC(),
		EventTimeZoneOffset: nullable(h.EventTimeZoneOffset),
	}

	var err error
	if base.BizStep, err = p.vocab.ResolveOptional(tx, model.ScopeBizStep, h.BizStep); err != nil {
		return base, err
	}
	if base.Disposition, err = p.vocab.ResolveOptional(tx, model.ScopeDisposition, h.Disposition); err != nil {
		return base, err
	}
	if base.ReadPoint, err = p.vocab.ResolveOptional(tx, model.ScopeReadPoint, h.ReadPoint); err != nil {
		return base, err
	}
	if base.BizLocation, err = p.vocab.ResolveOptional(tx, model.ScopeBizLocation, h.BizLocation); err != nil {
		return base, err
	}
	return base, nil
}

// bizTransaction returns the id of the (id, type) pair, inserting it when
// new. A missing type matches only rows whose type is NULL.
func (p *EventPersister) bizTransaction(tx *gorm.DB, bt model.BizTransaction) (int64, error) {
	transID, err := p.vocab.Resolve(tx, model.ScopeBizTransaction, bt.ID)
	if err != nil {
		return 0, err
	}
	typeID, err := p.vocab.ResolveOptional(tx, model.ScopeBizTransactionType, bt.Type)
	if err != nil {
		return 0, err
	}

	lookup := func() (int64, bool, error) {
		var row dbmodel.BizTransactionDBModel
		q := tx.Where("biz_trans = ?", transID)
		if typeID == nil {
			q = q.Where("type IS NULL")
		} else {
			q = q.Where("type = ?", *typeID)
		}
		result := q.Limit(1).Find(&row)
		if result.Error != nil {
			return 0, false, persistError(row.TableName(), result.Error)
		}
		return row.ID, result.RowsAffected > 0, nil
	}

	id, ok, err := lookup()
	if err != nil || ok {
		return id, err
	}

	row := dbmodel.BizTransactionDBModel{BizTrans: transID, Type: typeID}
	insertErr := tx.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if insertErr == nil {
		return row.ID, nil
	}

	id, ok, err = lookup()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, persistError(row.TableName(), insertErr)
	}
	return id, nil
}

func extensionRow(eventID int64, ext model.ExtensionField) dbmodel.EventExtension {
	row := dbmodel.EventExtension{
		EventID:   eventID,
		Fieldname: ext.Name,
		Prefix:    ext.Prefix,
		Namespace: ext.Namespace,
	}
	switch v := ext.Value.(type) {
	case model.IntValue:
		i := int64(v)
		row.IntValue = &i
	case model.FloatValue:
		f := float64(v)
		row.FloatValue = &f
	case model.TimeValue:
		t := time.Time(v)
		row.DateValue = &t
	case model.StringValue:
		s := string(v)
		row.StrValue = &s
	}
	return row
}

type tabler interface {
	TableName() string
}

func create(tx *gorm.DB, row interface{}) error {
	if err := tx.Create(row).Error; err != nil {
		table := "unknown"
		if t, ok := row.(tabler); ok {
			table = t.TableName()
		}
		return persistError(table, err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
