package budget

import (
	"errors"
	"fmt"

	"github.com/yurifrl/pocketmoney/pkg/models"
)

var (
	// ErrNotFound is returned when a budget, its metadata or its data
	// directory cannot be located.
	ErrNotFound = errors.New("budget not found")
	// ErrMalformedRecord is returned when a record does not have the
	// expected shape or lacks a required field.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidDocument is returned when a budget file is not valid JSON.
	ErrInvalidDocument = errors.New("invalid budget document")
)

// RecordError describes which record failed to load and why.
type RecordError struct {
	Entity string
	ID     models.ID
	Field  string
	Err    error
}

func (e *RecordError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Entity, e.Field, ErrMalformedRecord)
	if e.ID != "" {
		msg = fmt.Sprintf("%s %q %s: %s", e.Entity, e.ID, e.Field, ErrMalformedRecord)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RecordError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedRecord}
	}
	return []error{ErrMalformedRecord, e.Err}
}

func malformed(entity string, id models.ID, field string, err error) error {
	return &RecordError{Entity: entity, ID: id, Field: field, Err: err}
}
