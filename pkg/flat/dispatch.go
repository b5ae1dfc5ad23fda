package flat

import (
	"fmt"
)

// apply ensures the context of one level without forcing a new one and runs fn on it.
// Errors returned by fn are collaborator failures.
func apply[C any](b *Builder, ensure func(bool) (C, error), action string, fn func(C) error) error {
	return b.do(func() error {
		ctx, err := ensure(false)
		if err != nil {
			return err
		}
		if err := fn(ctx); err != nil {
			return b.failure(action, err)
		}
		return nil
	})
}

func begin[C any](b *Builder, ensure func(bool) (C, error), forceNew bool) error {
	return b.do(func() error {
		_, err := ensure(forceNew)
		return err
	})
}

func couldNotSet(what string, value any) string {
	return fmt.Sprintf("could not set %s to %v", what, value)
}

// DeclareFeature declares an instance feature on the open instance, or on the root when no
// instance is open.
func (b *Builder) DeclareFeature(name, description string) error {
	return b.do(func() error {
		var err error
		if f, ok := b.open.(*instanceFrame); ok {
			err = f.ctx.DeclareFeature(name, description)
		} else {
			err = b.root.DeclareFeature(name, description)
		}
		if err != nil {
			return b.failure(fmt.Sprintf("could not declare feature %q", name), err)
		}
		return nil
	})
}

// DeclareParameter declares a parameter on the innermost open level of the experiment chain,
// or on the root when no experiment is open.
func (b *Builder) DeclareParameter(name, description string) error {
	return b.do(func() error {
		var err error
		if f := b.chain(); f != nil {
			switch {
			case f.runs == nil:
				err = f.experiment.DeclareParameter(name, description)
			case f.runs.run == nil:
				err = f.runs.ctx.DeclareParameter(name, description)
			default:
				err = f.runs.run.DeclareParameter(name, description)
			}
		} else {
			err = b.root.DeclareParameter(name, description)
		}
		if err != nil {
			return b.failure(fmt.Sprintf("could not declare parameter %q", name), err)
		}
		return nil
	})
}
