package service

import (
	"errors"
	"fmt"
	"strings"

	"go-stockroom/pkg/validator"

	"gorm.io/gorm"
)

// The four failure kinds every operation can report. Handlers map these to
// status codes; nothing below the service boundary leaks raw store errors.

// ValidationError: a required field is missing or malformed. Raised before
// any store access.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", e.Field, e.Tag)
}

// ReferenceNotFoundError: a human-entered name or an id does not resolve to
// an existing row.
type ReferenceNotFoundError struct {
	Entity string
	Ref    string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' does not exist", e.Entity, e.Ref)
}

// ConstraintViolation: the store rejected the write (duplicate SKU or name,
// delete blocked by dependent rows). Carries the store's message.
type ConstraintViolation struct {
	Err error
}

func (e *ConstraintViolation) Error() string {
	return "constraint violation: " + e.Err.Error()
}

func (e *ConstraintViolation) Unwrap() error { return e.Err }

// StoreUnavailable: the store file could not be opened or the query failed
// for reasons unrelated to the data. Fatal to the operation, not the process.
type StoreUnavailable struct {
	Err error
}

func (e *StoreUnavailable) Error() string {
	return "store unavailable: " + e.Err.Error()
}

func (e *StoreUnavailable) Unwrap() error { return e.Err }

// validateStruct adapts the pkg wrapper to the taxonomy, reporting the first
// failed field the way the UI shows one message at a time.
func validateStruct(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}
	return nil
}

// classifyStoreErr converts a gorm/SQLite error into one of the typed
// failures. SQLite reports constraint failures only through the message
// text, so that is what we match on.
func classifyStoreErr(err error, entity, ref string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ReferenceNotFoundError{Entity: entity, Ref: ref}
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "constraint failed") {
		return &ConstraintViolation{Err: err}
	}
	return &StoreUnavailable{Err: err}
}
