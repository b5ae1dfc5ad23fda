package flat

import (
	"errors"
)

var (
	// ErrIllegalTransition is matched by errors for operations not reachable from the current mode.
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrCollaboratorFailure is matched by errors raised by the hierarchical collaborator.
	ErrCollaboratorFailure = errors.New("collaborator failure")
	// ErrConsumedBuilder is matched by errors for operations after the experiment set was handed out.
	ErrConsumedBuilder = errors.New("builder already consumed")
	// ErrConcurrentUse is matched by errors for calls overlapping another call on the same builder.
	ErrConcurrentUse = errors.New("concurrent use of builder")
)

// Kind classifies a builder error.
type Kind int

const (
	KindIllegalTransition Kind = iota + 1
	KindCollaboratorFailure
	KindConsumedBuilder
	KindConcurrentUse
)

func (k Kind) String() string {
	switch k {
	case KindIllegalTransition:
		return "illegal_transition"
	case KindCollaboratorFailure:
		return "collaborator_failure"
	case KindConsumedBuilder:
		return "consumed_builder"
	case KindConcurrentUse:
		return "concurrent_use"
	}
	return "unknown"
}

func (k Kind) sentinel() error {
	switch k {
	case KindIllegalTransition:
		return ErrIllegalTransition
	case KindCollaboratorFailure:
		return ErrCollaboratorFailure
	case KindConsumedBuilder:
		return ErrConsumedBuilder
	case KindConcurrentUse:
		return ErrConcurrentUse
	}
	return nil
}

// Error is the error type returned by Builder operations.
type Error struct {
	Kind Kind
	// Mode is the builder mode at the point of failure.
	Mode Mode
	// Location is the rendered diagnostic message.
	Location string
	// Cause is the collaborator error, if any.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Location
	}
	return e.Location + ": " + e.Cause.Error()
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// KindOf returns the kind of the first *Error in err's tree, or 0.
func KindOf(err error) Kind {
	if e := asError(err); e != nil {
		return e.Kind
	}
	return 0
}

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// joinErrors returns nil, the only error, or all errors joined in order.
func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return errors.Join(errs...)
}
