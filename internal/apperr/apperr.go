// Package apperr classifies ledger errors so callers can decide whether to
// fix their input, retry, or give up.
package apperr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind groups errors by what a caller can do about them.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Kinded is implemented by errors that know their own Kind.
type Kinded interface {
	Kind() Kind
}

// KindOf walks the error chain and returns the first Kind it finds.
func KindOf(err error) Kind {
	var k Kinded
	if errors.As(err, &k) {
		return k.Kind()
	}

	return KindUnknown
}

// Retryable reports whether err is a transient conflict.
func Retryable(err error) bool {
	return KindOf(err) == KindConflict
}

// Sentinel returns a plain error that reports the given Kind.
func Sentinel(kind Kind, msg string) error {
	return &sentinel{kind: kind, msg: msg}
}

type sentinel struct {
	kind Kind
	msg  string
}

func (e *sentinel) Error() string { return e.msg }
func (e *sentinel) Kind() Kind    { return e.kind }

// SequenceConflictError is returned when a generated account code or journal
// number collides with one written concurrently.
type SequenceConflictError struct {
	OwnerID uuid.UUID
	Scope   string
	Value   string
}

func (e *SequenceConflictError) Error() string {
	return fmt.Sprintf("sequence conflict for owner %s: %s %q already taken", e.OwnerID, e.Scope, e.Value)
}

func (e *SequenceConflictError) Kind() Kind { return KindConflict }

// OpError attaches the failing operation and owner to a storage error.
type OpError struct {
	Op      string
	OwnerID uuid.UUID
	Err     error
}

func (e *OpError) Error() string {
	if e.OwnerID == uuid.Nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s (owner %s): %v", e.Op, e.OwnerID, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Wrap returns err as an *OpError. Errors that already carry a Kind pass
// through untouched so that validation and conflict errors keep their shape.
func Wrap(op string, ownerID uuid.UUID, err error) error {
	if err == nil {
		return nil
	}

	if KindOf(err) != KindUnknown {
		return err
	}

	return &OpError{Op: op, OwnerID: ownerID, Err: err}
}
