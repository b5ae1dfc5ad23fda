package flat

import (
	"fmt"
	"strings"
)

// describeLocation renders base followed by the current construction phase and the
// names recorded along the open chain. Messages without a cause end with a period.
func (b *Builder) describeLocation(base string, hasCause bool) string {
	var sb strings.Builder
	if base == "" {
		base = "Error"
	}
	sb.WriteString(base)
	sb.WriteString(", a problem occurred while setting up ")
	sb.WriteString(b.mode().subject())

	switch f := b.open.(type) {
	case *dimensionFrame:
		writeName(&sb, " named %q", f.name)
	case *instanceFrame:
		writeName(&sb, " named %q", f.name)
	case *chainFrame:
		switch {
		case f.runs == nil:
			writeName(&sb, " named %q", f.name)
		case f.runs.run == nil:
			writeName(&sb, " for instance %q", f.runs.instance)
			writeName(&sb, " of experiment %q", f.name)
		default:
			writeName(&sb, " in the run set for instance %q", f.runs.instance)
			writeName(&sb, " of experiment %q", f.name)
		}
	}

	if !hasCause {
		sb.WriteByte('.')
	}
	return sb.String()
}

func writeName(sb *strings.Builder, format, name string) {
	if name != "" {
		fmt.Fprintf(sb, format, name)
	}
}

// illegal reports an operation that is not reachable from the current mode.
func (b *Builder) illegal(action string) error {
	mode := b.mode()
	return &Error{
		Kind:     KindIllegalTransition,
		Mode:     mode,
		Location: b.describeLocation(fmt.Sprintf("cannot %s in mode %s", action, mode), false),
	}
}

// failure wraps an error raised by the collaborator.
func (b *Builder) failure(action string, cause error) error {
	return &Error{
		Kind:     KindCollaboratorFailure,
		Mode:     b.mode(),
		Location: b.describeLocation(action, true),
		Cause:    cause,
	}
}

func (b *Builder) consumed() error {
	return &Error{
		Kind:     KindConsumedBuilder,
		Mode:     b.mode(),
		Location: b.describeLocation("the builder has already handed out its experiment set", false),
	}
}

// concurrentUse is built without reading builder state, which belongs to the other caller.
func concurrentUse() error {
	return &Error{
		Kind:     KindConcurrentUse,
		Location: "the builder is already in use by another call",
	}
}
