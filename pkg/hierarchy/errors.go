package hierarchy

import "errors"

var (
	// ErrClosed is returned when a closed context or a finalized builder is used.
	ErrClosed = errors.New("hierarchy: context is closed")
	// ErrChildOpen is returned when a context still has an open child.
	ErrChildOpen = errors.New("hierarchy: a child context is still open")
	// ErrFrozen is returned when adding to a set that no longer accepts additions.
	ErrFrozen = errors.New("hierarchy: set is frozen")
	// ErrMissingName is returned when a named context is closed without a name.
	ErrMissingName = errors.New("hierarchy: name not set")
	// ErrMissingType is returned when a dimension is closed without a type.
	ErrMissingType = errors.New("hierarchy: dimension type not set")
	// ErrMissingInstance is returned when a run set is closed without an instance.
	ErrMissingInstance = errors.New("hierarchy: run set instance not set")
	// ErrDuplicateName is returned when a name is already used at the same level.
	ErrDuplicateName = errors.New("hierarchy: duplicate name")
	// ErrInvalidValue is returned for values the model cannot hold.
	ErrInvalidValue = errors.New("hierarchy: invalid value")
	// ErrConflictingValue is returned when a setting already holds a different value.
	ErrConflictingValue = errors.New("hierarchy: conflicting value")
	// ErrUnknownDimension is returned when a bound names an undefined dimension.
	ErrUnknownDimension = errors.New("hierarchy: unknown dimension")
	// ErrUnknownInstance is returned when a run set names an undefined instance.
	ErrUnknownInstance = errors.New("hierarchy: unknown instance")
	// ErrEmptyRun is returned when a run is closed without data points.
	ErrEmptyRun = errors.New("hierarchy: run has no data points")
	// ErrArity is returned when a data point does not match the dimension count.
	ErrArity = errors.New("hierarchy: data point arity mismatch")
	// ErrDirection is returned when a data point breaks a dimension's direction.
	ErrDirection = errors.New("hierarchy: data point violates dimension direction")
)
