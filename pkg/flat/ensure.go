package flat

import (
	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/ports"
)

// The ensure functions return the context of their level, creating it when needed.
// With forceNew an open context of the same level is closed and replaced. Levels that
// cannot coexist with the target are closed first; levels the target cannot be reached
// from are rejected.

func (b *Builder) ensureDimension(forceNew bool) (ports.DimensionContext, error) {
	switch b.mode() {
	case ModeRoot:
	case ModeDimension:
		if !forceNew {
			return b.open.(*dimensionFrame).ctx, nil
		}
		if err := b.closeDimension(); err != nil {
			return nil, err
		}
	case ModeInstance, ModeExperiment, ModeRunSet, ModeRun:
		return nil, b.illegal("begin a dimension")
	default:
		return nil, b.illegal("begin a dimension")
	}

	ctx, err := b.root.CreateDimension()
	if err != nil {
		return nil, b.failure("could not create a dimension", err)
	}
	b.open = &dimensionFrame{ctx: ctx}
	b.opened(domain.LevelDimension)
	return ctx, nil
}

func (b *Builder) ensureInstance(forceNew bool) (ports.InstanceContext, error) {
	switch b.mode() {
	case ModeRoot:
	case ModeDimension:
		if err := b.closeDimension(); err != nil {
			return nil, err
		}
	case ModeInstance:
		if !forceNew {
			return b.open.(*instanceFrame).ctx, nil
		}
		if err := b.closeInstance(); err != nil {
			return nil, err
		}
	case ModeExperiment, ModeRunSet, ModeRun:
		return nil, b.illegal("begin an instance")
	default:
		return nil, b.illegal("begin an instance")
	}

	ctx, err := b.root.CreateInstance()
	if err != nil {
		return nil, b.failure("could not create an instance", err)
	}
	b.open = &instanceFrame{ctx: ctx}
	b.opened(domain.LevelInstance)
	return ctx, nil
}

func (b *Builder) ensureExperiment(forceNew bool) (ports.ExperimentContext, error) {
	switch b.mode() {
	case ModeRoot:
	case ModeDimension:
		if err := b.closeDimension(); err != nil {
			return nil, err
		}
	case ModeInstance:
		if err := b.closeInstance(); err != nil {
			return nil, err
		}
	case ModeExperiment, ModeRunSet, ModeRun:
		if err := b.unwindTo(ModeExperiment); err != nil {
			return nil, err
		}
		if !forceNew {
			return b.chain().experiment, nil
		}
		if err := b.closeExperiment(); err != nil {
			return nil, err
		}
	default:
		return nil, b.illegal("begin an experiment")
	}

	ctx, err := b.root.CreateExperiment()
	if err != nil {
		return nil, b.failure("could not create an experiment", err)
	}
	b.open = &chainFrame{experiment: ctx}
	b.opened(domain.LevelExperiment)
	return ctx, nil
}

func (b *Builder) ensureRunSet(forceNew bool) (ports.InstanceRunsContext, error) {
	switch b.mode() {
	case ModeExperiment:
	case ModeRunSet, ModeRun:
		if err := b.unwindTo(ModeRunSet); err != nil {
			return nil, err
		}
		if !forceNew {
			return b.chain().runs.ctx, nil
		}
		if err := b.closeRunSet(); err != nil {
			return nil, err
		}
	case ModeRoot, ModeDimension, ModeInstance:
		return nil, b.illegal("begin a run set")
	default:
		return nil, b.illegal("begin a run set")
	}

	f := b.chain()
	ctx, err := f.experiment.CreateInstanceRuns()
	if err != nil {
		return nil, b.failure("could not create a run set", err)
	}
	f.runs = &runsFrame{ctx: ctx}
	b.opened(domain.LevelRunSet)
	return ctx, nil
}

func (b *Builder) ensureRun(forceNew bool) (ports.RunContext, error) {
	switch b.mode() {
	case ModeRunSet:
	case ModeRun:
		if !forceNew {
			return b.chain().runs.run, nil
		}
		if err := b.closeRun(); err != nil {
			return nil, err
		}
	case ModeRoot, ModeDimension, ModeInstance, ModeExperiment:
		return nil, b.illegal("begin a run")
	default:
		return nil, b.illegal("begin a run")
	}

	runs := b.chain().runs
	ctx, err := runs.ctx.CreateRun()
	if err != nil {
		return nil, b.failure("could not create a run", err)
	}
	runs.run = ctx
	b.opened(domain.LevelRun)
	return ctx, nil
}
