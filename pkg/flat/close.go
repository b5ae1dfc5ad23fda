package flat

import (
	"github.com/aretw0/flatexp/pkg/domain"
)

// Every close function resets the builder to the parent mode when it returns or panics,
// whatever the collaborator reported.

func (b *Builder) closeDimension() (err error) {
	f := b.open.(*dimensionFrame)
	defer func() {
		b.open = nil
		b.closed(domain.LevelDimension, f.name, err)
	}()
	if cerr := f.ctx.Close(); cerr != nil {
		return b.failure("could not close the dimension", cerr)
	}
	return nil
}

func (b *Builder) closeInstance() (err error) {
	f := b.open.(*instanceFrame)
	defer func() {
		b.open = nil
		b.closed(domain.LevelInstance, f.name, err)
	}()
	if cerr := f.ctx.Close(); cerr != nil {
		return b.failure("could not close the instance", cerr)
	}
	return nil
}

// closeExperiment expects the run set to be closed already.
func (b *Builder) closeExperiment() (err error) {
	f := b.chain()
	defer func() {
		b.open = nil
		b.closed(domain.LevelExperiment, f.name, err)
	}()
	if cerr := f.experiment.Close(); cerr != nil {
		return b.failure("could not close the experiment", cerr)
	}
	return nil
}

// closeRunSet expects the run to be closed already.
func (b *Builder) closeRunSet() (err error) {
	f := b.chain()
	runs := f.runs
	defer func() {
		f.runs = nil
		b.closed(domain.LevelRunSet, runs.instance, err)
	}()
	if cerr := runs.ctx.Close(); cerr != nil {
		return b.failure("could not close the run set", cerr)
	}
	return nil
}

func (b *Builder) closeRun() (err error) {
	runs := b.chain().runs
	defer func() {
		runs.run = nil
		b.closed(domain.LevelRun, "", err)
	}()
	if cerr := runs.run.Close(); cerr != nil {
		return b.failure("could not close the run", cerr)
	}
	return nil
}

// closeCurrent closes the innermost open level.
func (b *Builder) closeCurrent() error {
	switch b.mode() {
	case ModeDimension:
		return b.closeDimension()
	case ModeInstance:
		return b.closeInstance()
	case ModeExperiment:
		return b.closeExperiment()
	case ModeRunSet:
		return b.closeRunSet()
	case ModeRun:
		return b.closeRun()
	}
	return nil
}

// unwindTo closes every open level nested deeper than target, innermost first.
// A failing close does not stop the unwind; all failures are returned joined in order.
// target must lie on the currently open branch.
func (b *Builder) unwindTo(target Mode) error {
	var errs []error
	for b.mode().depth() > target.depth() {
		if err := b.closeCurrent(); err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}

// endLevel closes the levels from the innermost one up to and including level,
// provided level is open. It does nothing otherwise.
func (b *Builder) endLevel(level Mode) error {
	if !b.isOpen(level) {
		return nil
	}
	return b.unwindTo(level.Parent())
}

func (b *Builder) isOpen(level Mode) bool {
	mode := b.mode()
	switch level {
	case ModeDimension, ModeInstance:
		return mode == level
	case ModeExperiment, ModeRunSet, ModeRun:
		return b.chain() != nil && mode.depth() >= level.depth()
	}
	return false
}

// Flush closes every open level, innermost first, and returns the builder to ROOT.
func (b *Builder) Flush() error {
	return b.do(func() error {
		return b.unwindTo(ModeRoot)
	})
}

// DimensionEnd closes the open dimension, if any.
func (b *Builder) DimensionEnd() error {
	return b.do(func() error { return b.endLevel(ModeDimension) })
}

// InstanceEnd closes the open instance, if any.
func (b *Builder) InstanceEnd() error {
	return b.do(func() error { return b.endLevel(ModeInstance) })
}

// ExperimentEnd closes the open experiment together with its open run set and run.
func (b *Builder) ExperimentEnd() error {
	return b.do(func() error { return b.endLevel(ModeExperiment) })
}

// RunsEnd closes the open run set together with its open run.
func (b *Builder) RunsEnd() error {
	return b.do(func() error { return b.endLevel(ModeRunSet) })
}

// RunEnd closes the open run, if any.
func (b *Builder) RunEnd() error {
	return b.do(func() error { return b.endLevel(ModeRun) })
}
