package service

import (
	"gorm.io/gorm"
)

var MyService Repository

type Repository interface {
	Capture() CaptureService
	Event() EventService
	Vocabulary() VocabularyService
}

func NewService(db *gorm.DB, policy VocabularyPolicy) Repository {
	return &store{
		capture:    NewCaptureService(db, policy),
		event:      NewEventService(db),
		vocabulary: NewVocabularyService(db, policy),
	}
}

type store struct {
	capture    CaptureService
	event      EventService
	vocabulary VocabularyService
}

func (c *store) Capture() CaptureService {
	return c.capture
}

func (c *store) Event() EventService {
	return c.event
}

func (c *store) Vocabulary() VocabularyService {
	return c.vocabulary
}
