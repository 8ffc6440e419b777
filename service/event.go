package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/IceWhaleTech/CasaOS-EPCISService/model"
	dbmodel "github.com/IceWhaleTech/CasaOS-EPCISService/service/model"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

// EventService reads stored events back into their structured form.
type EventService interface {
	GetEvent(ctx context.Context, kind model.EventKind, id int64) (model.StructuredEvent, error)
	CountEvents(ctx context.Context, kind model.EventKind) (int64, error)
}

type eventService struct {
	db *gorm.DB
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func (e *eventService) withRelations(ctx context.Context) *gorm.DB {
	return e.db.WithContext(ctx).
		Preload("BizStepVocabulary").
		Preload("DispositionVocabulary").
		Preload("ReadPointVocabulary").
		Preload("BizLocationVocabulary").
		Preload("Extensions", byID).
		Preload("BizTransactions", byID).
		Preload("BizTransactions.BizTransaction.BizTransVocabulary").
		Preload("BizTransactions.BizTransaction.TypeVocabulary")
}

func (e *eventService) GetEvent(ctx context.Context, kind model.EventKind, id int64) (model.StructuredEvent, error) {
	db := e.withRelations(ctx)

	switch kind {
	case model.KindObjectEvent:
		var row dbmodel.ObjectEventDBModel
		if err := db.Preload("EPCs", byID).Where("id = ?", id).Take(&row).Error; err != nil {
			return nil, notFound(row.TableName(), err)
		}
		return &model.ObjectEvent{
			EventHeader: headerOf(row.EventDBModel, row.BizStepVocabulary, row.DispositionVocabulary, row.ReadPointVocabulary, row.BizLocationVocabulary,
				extensionsOf(row.Extensions), linksOf(row.BizTransactions)),
			Action: model.Action(deref(row.Action)),
			EPCs:   epcsOf(row.EPCs),
		}, nil

	case model.KindAggregationEvent:
		var row dbmodel.AggregationEventDBModel
		if err := db.Preload("EPCs", byID).Where("id = ?", id).Take(&row).Error; err != nil {
			return nil, notFound(row.TableName(), err)
		}
		return &model.AggregationEvent{
			EventHeader: headerOf(row.EventDBModel, row.BizStepVocabulary, row.DispositionVocabulary, row.ReadPointVocabulary, row.BizLocationVocabulary,
				extensionsOf(row.Extensions), linksOf(row.BizTransactions)),
			Action:    model.Action(deref(row.Action)),
			ParentID:  deref(row.ParentID),
			ChildEPCs: epcsOf(row.EPCs),
		}, nil

	case model.KindQuantityEvent:
		var row dbmodel.QuantityEventDBModel
		if err := db.Preload("EPCClassVocabulary").Where("id = ?", id).Take(&row).Error; err != nil {
			return nil, notFound(row.TableName(), err)
		}
		ev := &model.QuantityEvent{
			EventHeader: headerOf(row.EventDBModel, row.BizStepVocabulary, row.DispositionVocabulary, row.ReadPointVocabulary, row.BizLocationVocabulary,
				extensionsOf(row.Extensions), linksOf(row.BizTransactions)),
			Quantity: row.Quantity,
		}
		if row.EPCClassVocabulary != nil {
			ev.EPCClass = row.EPCClassVocabulary.URI
		}
		return ev, nil

	case model.KindTransactionEvent:
		var row dbmodel.TransactionEventDBModel
		if err := db.Preload("EPCs", byID).Where("id = ?", id).Take(&row).Error; err != nil {
			return nil, notFound(row.TableName(), err)
		}
		return &model.TransactionEvent{
			EventHeader: headerOf(row.EventDBModel, row.BizStepVocabulary, row.DispositionVocabulary, row.ReadPointVocabulary, row.BizLocationVocabulary,
				extensionsOf(row.Extensions), linksOf(row.BizTransactions)),
			Action: model.Action(deref(row.Action)),
			EPCs:   epcsOf(row.EPCs),
		}, nil
	}
	return nil, fmt.Errorf("%w: '%s'", ErrUnknownEventKind, kind)
}

func (e *eventService) CountEvents(ctx context.Context, kind model.EventKind) (int64, error) {
	var row dbmodel.EventRow
	switch kind {
	case model.KindObjectEvent:
		row = &dbmodel.ObjectEventDBModel{}
	case model.KindAggregationEvent:
		row = &dbmodel.AggregationEventDBModel{}
	case model.KindQuantityEvent:
		row = &dbmodel.QuantityEventDBModel{}
	case model.KindTransactionEvent:
		row = &dbmodel.TransactionEventDBModel{}
	default:
		return 0, fmt.Errorf("%w: '%s'", ErrUnknownEventKind, kind)
	}
	var count int64
	if err := e.db.WithContext(ctx).Model(row).Count(&count).Error; err != nil {
		return 0, persistError(row.TableName(), err)
	}
	return count, nil
}

func headerOf(
	base dbmodel.EventDBModel,
	bizStep *dbmodel.BizStepDBModel,
	disposition *dbmodel.DispositionDBModel,
	readPoint *dbmodel.ReadPointDBModel,
	bizLocation *dbmodel.BizLocationDBModel,
	exts []dbmodel.EventExtension,
	bts []*dbmodel.BizTransactionDBModel,
) model.EventHeader {
	recordTime := base.RecordTime
	h := model.EventHeader{
		EventTime:           base.EventTime,
		RecordTime:          &recordTime,
		EventTimeZoneOffset: deref(base.EventTimeZoneOffset),
	}
	if bizStep != nil {
		h.BizStep = bizStep.URI
	}
	if disposition != nil {
		h.Disposition = disposition.URI
	}
	if readPoint != nil {
		h.ReadPoint = readPoint.URI
	}
	if bizLocation != nil {
		h.BizLocation = bizLocation.URI
	}

	for _, x := range exts {
		field := model.ExtensionField{Prefix: x.Prefix, Namespace: x.Namespace, Name: x.Fieldname}
		switch {
		case x.IntValue != nil:
			field.Value = model.IntValue(*x.IntValue)
		case x.FloatValue != nil:
			field.Value = model.FloatValue(*x.FloatValue)
		case x.DateValue != nil:
			field.Value = model.TimeValue(*x.DateValue)
		default:
			field.Value = model.StringValue(deref(x.StrValue))
		}
		h.Extensions = append(h.Extensions, field)
	}

	for _, b := range bts {
		if b == nil {
			continue
		}
		var bt model.BizTransaction
		if b.BizTransVocabulary != nil {
			bt.ID = b.BizTransVocabulary.URI
		}
		if b.TypeVocabulary != nil {
			bt.Type = b.TypeVocabulary.URI
		}
		h.BizTransactions = append(h.BizTransactions, bt)
	}
	return h
}

func epcsOf[T interface{ EPCValue() string }](rows []T) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.EPCValue())
	}
	return out
}

func extensionsOf[T interface{ Field() dbmodel.EventExtension }](rows []T) []dbmodel.EventExtension {
	out := make([]dbmodel.EventExtension, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Field())
	}
	return out
}

func linksOf[T interface {
	Linked() *dbmodel.BizTransactionDBModel
}](rows []T) []*dbmodel.BizTransactionDBModel {
	out := make([]*dbmodel.BizTransactionDBModel, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Linked())
	}
	return out
}

func notFound(table string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEventNotFound
	}
	return persistError(table, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func NewEventService(db *gorm.DB) EventService {
	return &eventService{db: db}
}
