package flat

import "github.com/aretw0/flatexp/pkg/domain"

// Mode is the construction phase of a Builder.
type Mode int

const (
	ModeRoot Mode = iota
	ModeDimension
	ModeInstance
	ModeExperiment
	ModeRunSet
	ModeRun
)

// String returns the upper-case mode name used in diagnostics.
func (m Mode) String() string {
	switch m {
	case ModeRoot:
		return "ROOT"
	case ModeDimension:
		return "DIMENSION"
	case ModeInstance:
		return "INSTANCE"
	case ModeExperiment:
		return "EXPERIMENT"
	case ModeRunSet:
		return "RUN_SET"
	case ModeRun:
		return "RUN"
	}
	return "UNKNOWN"
}

// Parent returns the mode the builder returns to when the current level closes.
func (m Mode) Parent() Mode {
	switch m {
	case ModeRun:
		return ModeRunSet
	case ModeRunSet:
		return ModeExperiment
	}
	return ModeRoot
}

// depth is the nesting depth of the mode below the root.
func (m Mode) depth() int {
	switch m {
	case ModeDimension, ModeInstance, ModeExperiment:
		return 1
	case ModeRunSet:
		return 2
	case ModeRun:
		return 3
	}
	return 0
}

// Level returns the domain level matching the mode.
func (m Mode) Level() domain.Level {
	switch m {
	case ModeDimension:
		return domain.LevelDimension
	case ModeInstance:
		return domain.LevelInstance
	case ModeExperiment:
		return domain.LevelExperiment
	case ModeRunSet:
		return domain.LevelRunSet
	case ModeRun:
		return domain.LevelRun
	}
	return domain.LevelRoot
}

// subject is the noun phrase used in diagnostics.
func (m Mode) subject() string {
	switch m {
	case ModeDimension:
		return "a dimension"
	case ModeInstance:
		return "an instance"
	case ModeExperiment:
		return "an experiment"
	case ModeRunSet:
		return "a run set"
	case ModeRun:
		return "a run"
	}
	return "the experiment set"
}
