package service

import (
	"errors"
	"fmt"
	"strings"
)

// Capture failures. Extraction and document errors come wrapped in
// *ExtractionError, storage failures in *PersistError; match with errors.Is.
var (
	ErrMalformedDocument = errors.New("malformed document")
	ErrMissingEventList  = errors.New("document has no EventList")
	ErrUnknownEventKind  = errors.New("unknown event kind")
	ErrEmptyEvent        = errors.New("event has no children")
	ErrInvalidAction     = errors.New("invalid action")
	ErrUnknownChildTag   = errors.New("unknown child tag")
	ErrUnknownFieldTag   = errors.New("unknown field tag")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidURI        = errors.New("value is not a URI")
	ErrPolicyViolation   = errors.New("vocabulary not found and insertion disabled")
	ErrPersist           = errors.New("persist failed")
)

// ExtractionError locates a structural problem in a captured document.
type ExtractionError struct {
	Err    error  // one of the sentinels above
	Event  string // tag of the offending event element
	Index  int    // position of the event in the EventList, -1 if unknown
	Field  string // offending child tag, if any
	Detail string
	Cause  error
}

func (e *ExtractionError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Event != "" {
		fmt.Fprintf(&b, " in event '%s'", e.Event)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, " (#%d)", e.Index)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " at field '%s'", e.Field)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *ExtractionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// PersistError is a storage failure while writing to Table.
type PersistError struct {
	Table string
	Err   error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist into %s: %v", e.Table, e.Err)
}

func (e *PersistError) Unwrap() []error {
	return []error{ErrPersist, e.Err}
}

func persistError(table string, err error) error {
	var perr *PersistError
	if errors.As(err, &perr) || errors.Is(err, ErrPolicyViolation) {
		return err
	}
	return &PersistError{Table: table, Err: err}
}
