package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IceWhaleTech/CasaOS-EPCISService/model"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/logger"
	"github.com/beevik/etree"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CaptureService interface {
	CaptureDocument(ctx context.Context, payload []byte) (model.CaptureReport, error)
	Policy() VocabularyPolicy
}

type captureService struct {
	db        *gorm.DB
	vocab     *VocabularyResolver
	extractor *EventExtractor
	persister *EventPersister
}

// CaptureDocument stores every event of an EPCIS document, or none of them.
//
// All events are extracted before the first write. Persisting then runs in
// one transaction; any failure rolls the whole document back.
func (c *captureService) CaptureDocument(ctx context.Context, payload []byte) (model.CaptureReport, error) {
	report := model.CaptureReport{
		RequestID: uuid.NewV4().String(),
		PerKind:   map[model.EventKind]int{},
		EventIDs:  []model.EventID{},
	}
	start := time.Now()

	events, err := c.extractDocument(payload)
	if err != nil {
		logger.Info("capture rejected", zap.String("request_id", report.RequestID), zap.Error(err))
		return report, err
	}

	if len(events) > 0 {
		err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for i, ev := range events {
				id, err := c.persister.Persist(tx, ev)
				if err != nil {
					return fmt.Errorf("event #%d (%s): %w", i, ev.Kind(), err)
				}
				report.EventIDs = append(report.EventIDs, id)
			}
			return nil
		})
		if err != nil {
			logger.Error("capture rolled back", zap.String("request_id", report.RequestID), zap.Error(err))
			report.EventIDs = []model.EventID{}
			return report, err
		}
	}

	for _, id := range report.EventIDs {
		report.PerKind[id.Kind]++
	}
	report.Captured = len(report.EventIDs)

	logger.Info("capture committed", zap.String("request_id", report.RequestID), zap.Int("events", report.Captured),
		zap.Any("per_kind", report.PerKind), zap.Duration("took", time.Since(start)))
	return report, nil
}

func (c *captureService) extractDocument(payload []byte) ([]model.StructuredEvent, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(payload); err != nil {
		return nil, &ExtractionError{Err: ErrMalformedDocument, Index: -1, Cause: err}
	}
	if doc.Root() == nil {
		return nil, &ExtractionError{Err: ErrMalformedDocument, Index: -1, Detail: "no root element"}
	}

	list := doc.FindElement("//EventList")
	if list == nil {
		return nil, &ExtractionError{Err: ErrMissingEventList, Index: -1}
	}

	children := list.ChildElements()
	events := make([]model.StructuredEvent, 0, len(children))
	for i, el := range children {
		ev, err := c.extractor.Extract(doc, el)
		if err != nil {
			var xerr *ExtractionError
			if errors.As(err, &xerr) {
				xerr.Index = i
			}
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (c *captureService) Policy() VocabularyPolicy {
	return c.vocab.Policy()
}

func NewCaptureService(db *gorm.DB, policy VocabularyPolicy) CaptureService {
	vocab := NewVocabularyResolver(policy)
	return &captureService{
		db:        db,
		vocab:     vocab,
		extractor: NewEventExtractor(),
		persister: NewEventPersister(vocab),
	}
}
