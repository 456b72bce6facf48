package waitk

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// revive:exported
var (
	ErrNoDriver            = errors.New("no driver is bound, call Open(url) on the shared browser first")
	ErrDriverClosed        = errors.New("driver has been closed, call Open(url) to start a new session")
	ErrConditionNotMatched = errors.New("condition not matched")
	ErrNoSuchElement       = errors.New("no such element")
	ErrScriptsUnsupported  = errors.New("driver does not support scripts")
	ErrUnknownStrategy     = errors.New("unsupported selector strategy")
)

// TimeoutError is returned by a Wait when its operation kept failing until the deadline.
type TimeoutError struct {
	Timeout   time.Duration
	Entity    string
	Operation string
	Reason    error
	// Notes are appended by failure hooks, such as a screenshot location.
	Notes []string
}

func newTimeoutError(timeout time.Duration, entity, operation string, reason error) *TimeoutError {
	return &TimeoutError{Timeout: timeout, Entity: entity, Operation: operation, Reason: reason}
}

func (e *TimeoutError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n\nTimed out after %s, while waiting for:\n%s.%s\n\nReason: %s: %s",
		e.Timeout, e.Entity, e.Operation, errorKind(e.Reason), reasonMessage(e.Reason))
	for _, note := range e.Notes {
		sb.WriteString("\n")
		sb.WriteString(note)
	}
	return sb.String()
}

func (e *TimeoutError) Unwrap() error {
	return e.Reason
}

// WithNote returns a copy of the error with an extra line of diagnostics.
func (e *TimeoutError) WithNote(note string) *TimeoutError {
	cp := *e
	cp.Notes = append(append([]string(nil), e.Notes...), note)
	return &cp
}

// AddNote appends a diagnostic line to err when it is a *TimeoutError, otherwise
// it wraps err with the note.
func AddNote(err error, note string) error {
	var te *TimeoutError
	if errors.As(err, &te) {
		return te.WithNote(note)
	}
	return errors.Wrap(err, note)
}

// IndexError is returned when a collection is indexed outside of its current length.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("Cannot get element with index %d from webelements collection with length %d", e.Index, e.Length)
}

// OverlapError is returned when another element covers the one being acted on.
type OverlapError struct {
	Element string
	Cover   string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("Element: %s\n\tis overlapped by: %s", e.Element, e.Cover)
}

// ElementNotFoundErr when no element matched a condition among candidates
type ElementNotFoundErr struct {
	Message string
}

func (e *ElementNotFoundErr) Error() string {
	return "Cannot find element " + e.Message
}

// MismatchErr carries the actual value a query resolved to when a condition failed.
type MismatchErr struct {
	Query  string
	Actual interface{}
}

func (e *MismatchErr) Error() string {
	return fmt.Sprintf("actual %s: %v", e.Query, e.Actual)
}

type permanentErr struct {
	err error
}

func (p *permanentErr) Error() string { return p.err.Error() }
func (p *permanentErr) Unwrap() error { return p.err }
func (p *permanentErr) Cause() error  { return p.err }

// Permanent marks err as structural: a Wait returns it at once instead of retrying.
func Permanent(err error) error {
	if err == nil || IsPermanent(err) {
		return err
	}
	return &permanentErr{err: err}
}

// IsPermanent reports whether err, or anything it wraps, was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentErr
	return errors.As(err, &p)
}

// errorKind is the short type name used in timeout reasons.
func errorKind(err error) string {
	if err == nil {
		return "Error"
	}
	t := reflect.TypeOf(errors.Cause(err))
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" || strings.ToLower(name[:1]) == name[:1] {
		return "Error"
	}
	return name
}

func reasonMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
