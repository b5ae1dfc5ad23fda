package flat

import (
	"github.com/aretw0/flatexp/pkg/domain"
)

// DimensionSet closes an open dimension and returns the dimensions declared so far.
func (b *Builder) DimensionSet() (domain.DimensionSet, error) {
	var set domain.DimensionSet
	err := b.do(func() error {
		if b.mode() == ModeDimension {
			if err := b.closeDimension(); err != nil {
				return err
			}
		}
		var err error
		if set, err = b.root.DimensionSet(); err != nil {
			return b.failure("could not obtain the dimension set", err)
		}
		return nil
	})
	return set, err
}

// InstanceSet closes an open instance and returns the instances declared so far.
// It is illegal while a dimension is open.
func (b *Builder) InstanceSet() (domain.InstanceSet, error) {
	var set domain.InstanceSet
	err := b.do(func() error {
		if err := b.leaveInstance("obtain the instance set"); err != nil {
			return err
		}
		var err error
		if set, err = b.root.InstanceSet(); err != nil {
			return b.failure("could not obtain the instance set", err)
		}
		return nil
	})
	return set, err
}

// FeatureSet closes an open instance and returns the declared features.
// It is illegal while a dimension is open.
func (b *Builder) FeatureSet() (domain.FeatureSet, error) {
	var set domain.FeatureSet
	err := b.do(func() error {
		if err := b.leaveInstance("obtain the feature set"); err != nil {
			return err
		}
		var err error
		if set, err = b.root.FeatureSet(); err != nil {
			return b.failure("could not obtain the feature set", err)
		}
		return nil
	})
	return set, err
}

func (b *Builder) leaveInstance(action string) error {
	switch b.mode() {
	case ModeDimension:
		return b.illegal(action)
	case ModeInstance:
		return b.closeInstance()
	}
	return nil
}

// ParameterSet closes an open experiment chain and returns the declared parameters.
func (b *Builder) ParameterSet() (domain.ParameterSet, error) {
	var set domain.ParameterSet
	err := b.do(func() error {
		if b.chain() != nil {
			if err := b.unwindTo(ModeRoot); err != nil {
				return err
			}
		}
		var err error
		if set, err = b.root.ParameterSet(); err != nil {
			return b.failure("could not obtain the parameter set", err)
		}
		return nil
	})
	return set, err
}

// ExperimentSet flushes every open level, finalizes the collaborator and returns the
// experiment set. The builder is consumed afterwards, even when finalizing fails.
// If the flush fails the error is returned, the builder stays usable in ROOT and no
// experiment set is created.
func (b *Builder) ExperimentSet() (*domain.ExperimentSet, error) {
	var set *domain.ExperimentSet
	err := b.do(func() error {
		if err := b.unwindTo(ModeRoot); err != nil {
			return err
		}
		root := b.root
		b.root = nil

		var err error
		if set, err = root.Create(); err != nil {
			if cerr := root.Close(); cerr != nil {
				b.logger.Warn("could not release the collaborator", "error", cerr)
			}
			return b.failure("could not create the experiment set", err)
		}
		b.logger.Debug("experiment set created",
			"experiments", len(set.Experiments),
			"runs", set.RunCount(),
		)
		return nil
	})
	return set, err
}

// Close discards the builder. Open levels are closed best effort, the collaborator is
// closed and the builder is consumed. All failures are returned joined.
func (b *Builder) Close() error {
	return b.do(func() error {
		var errs []error
		if err := b.unwindTo(ModeRoot); err != nil {
			errs = append(errs, err)
		}
		root := b.root
		b.root = nil
		if err := root.Close(); err != nil {
			errs = append(errs, b.failure("could not close the collaborator", err))
		}
		return joinErrors(errs)
	})
}
