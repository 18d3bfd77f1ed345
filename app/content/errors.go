package content

import (
	"errors"
	"fmt"
)

var (
	ErrTransport   = errors.New("collection fetch failed")
	ErrNotFound    = errors.New("no record matches slug")
	ErrUnknownType = errors.New("unknown content type")
)

type ErrorKind string

const (
	KindTransport ErrorKind = "transport_failure"
	KindNotFound  ErrorKind = "not_found"
)

// ResolutionError is returned by Service when a record cannot be produced.
// errors.Is matches ErrTransport or ErrNotFound according to Kind, and the
// transport cause stays reachable through errors.Is/As.
type ResolutionError struct {
	Kind ErrorKind
	Type Type
	Slug string
	Err  error
}

func (e *ResolutionError) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("resolve %s %q: %v: %v", e.Type, e.Slug, ErrTransport, e.Err)
	default:
		return fmt.Sprintf("resolve %s %q: %v", e.Type, e.Slug, ErrNotFound)
	}
}

func (e *ResolutionError) Unwrap() []error {
	sentinel := ErrNotFound
	if e.Kind == KindTransport {
		sentinel = ErrTransport
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}
