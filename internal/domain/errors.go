package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NotFoundError reports every missing id of one resource kind, not just
// the first.
type NotFoundError struct {
	Resource string
	IDs      []int64
}

func (e NotFoundError) Error() string {
	if len(e.IDs) == 0 {
		if e.Resource == "" {
			return "not found"
		}
		return fmt.Sprintf("%s not found", e.Resource)
	}
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, strings.Join(ids, ", "))
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ConflictError reports a name-uniqueness violation surfaced by the
// storage constraint.
type ConflictError struct {
	Resource string
}

func (e ConflictError) Error() string {
	if e.Resource == "" {
		return "name already exists"
	}
	return fmt.Sprintf("a %s with this name already exists", e.Resource)
}

func (e ConflictError) Is(target error) bool {
	_, ok := target.(ConflictError)
	if ok {
		return true
	}
	_, ok = target.(*ConflictError)
	return ok
}

var ErrConflict = ConflictError{}

// ValidationError reports malformed or missing input. It is always
// raised before any storage call.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	if e.Message == "" {
		return "invalid input"
	}
	return e.Message
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

var ErrValidation = ValidationError{}

// StorageError wraps an opaque failure from the storage collaborator.
// The catalog never retries these.
type StorageError struct {
	Err error
}

func (e StorageError) Error() string {
	if e.Err == nil {
		return "storage failure"
	}
	return fmt.Sprintf("storage failure: %v", e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

func (e StorageError) Is(target error) bool {
	_, ok := target.(StorageError)
	if ok {
		return true
	}
	_, ok = target.(*StorageError)
	return ok
}

var ErrStorage = StorageError{}
