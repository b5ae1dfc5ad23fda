/*
Package flat turns a flat, strictly sequential stream of begin/set/end calls into a
hierarchical experiment set.

A Builder drives a ports.ExperimentSetBuilder. It keeps at most one open context per level
and creates contexts lazily: the first setter called for a level opens it, later setters
reuse it until the level is ended, forced to a new context, or closed to make room for
another level.

The levels form two shapes. Dimensions and instances are leaves of the root and exclude
each other. Experiments open a chain: experiment, run set (the runs of the experiment on one
instance) and run. Ending an outer level of the chain closes the inner ones first, innermost
first, and every close resets the builder state even when the collaborator fails.

	b := flat.New(hierarchy.New())

	_ = b.DimensionSetName("time")
	_ = b.DimensionSetType(domain.DimensionTypeTime)
	_ = b.InstanceSetName("i1") // closes the dimension
	_ = b.ExperimentSetName("e1")
	_ = b.RunsSetInstance("i1")
	_ = b.RunAddDataPoint(1.0)

	set, err := b.ExperimentSet() // flushes everything and consumes the builder

Every error returned by a Builder is a *Error (or an errors.Join of them when several
closes failed during one unwind) and matches one of ErrIllegalTransition,
ErrCollaboratorFailure, ErrConsumedBuilder or ErrConcurrentUse with errors.Is.

A Builder is meant for a single caller. Overlapping calls are detected and rejected with
ErrConcurrentUse rather than serialized. Mode and Consumed never fail; they report the state
left by the last completed operation and may be called from any goroutine.
*/
package flat
