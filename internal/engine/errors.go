package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned for any wizard action while a gateway request is in flight.
	ErrBusy = errors.New("a request is already in progress")
	// ErrStaleResult marks a gateway result whose request was cancelled or superseded.
	ErrStaleResult = errors.New("stale gateway result")
	// ErrNoProfile is returned when an action needs a blueprint that was never created.
	ErrNoProfile = errors.New("no blueprint: complete onboarding first")
)

// ValidationError rejects malformed user input. No state changes when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransitionError is returned when an action is not available on the current screen.
type TransitionError struct {
	From   Screen
	Action string
}

func (e TransitionError) Error() string {
	return fmt.Sprintf("cannot %s from %s", e.Action, e.From)
}

type GenerationErrorKind int

const (
	// Upstream: the provider was unreachable or returned an error.
	Upstream GenerationErrorKind = iota + 1
	// InvalidFormat: the provider answered but the content is not a valid result.
	InvalidFormat
)

func (k GenerationErrorKind) String() string {
	switch k {
	case Upstream:
		return "upstream"
	case InvalidFormat:
		return "invalid_format"
	default:
		return "unknown"
	}
}

type GenerationError struct {
	Kind GenerationErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return "generation failed (" + e.Kind.String() + ")"
	}
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func UpstreamError(err error) error {
	return &GenerationError{Kind: Upstream, Err: err}
}

func InvalidFormatError(err error) error {
	return &GenerationError{Kind: InvalidFormat, Err: err}
}

// GenerationKind returns the kind of a wrapped GenerationError, or 0.
func GenerationKind(err error) GenerationErrorKind {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return 0
}

// PersistenceError wraps a storage failure. The wizard never lets one block a transition.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
