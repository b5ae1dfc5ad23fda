package flat

import (
	"fmt"

	"github.com/aretw0/flatexp/pkg/ports"
)

// ExperimentBegin opens an experiment, closing an open dimension or instance first.
// Without forceNew an open experiment is reused after its run set and run are closed.
func (b *Builder) ExperimentBegin(forceNew bool) error {
	return begin(b, b.ensureExperiment, forceNew)
}

// ExperimentSetName names the open experiment, opening one when needed.
func (b *Builder) ExperimentSetName(name string) error {
	return apply(b, b.ensureExperiment, couldNotSet("the experiment name", fmt.Sprintf("%q", name)),
		func(c ports.ExperimentContext) error {
			if err := c.SetName(name); err != nil {
				return err
			}
			b.chain().name = name
			return nil
		})
}

// ExperimentSetDescription replaces the description of the open experiment.
func (b *Builder) ExperimentSetDescription(text string) error {
	return apply(b, b.ensureExperiment, "could not set the experiment description",
		func(c ports.ExperimentContext) error { return c.SetDescription(text) })
}

// ExperimentAddDescription appends text to the description of the open experiment.
func (b *Builder) ExperimentAddDescription(text string) error {
	return apply(b, b.ensureExperiment, "could not extend the experiment description",
		func(c ports.ExperimentContext) error { return c.AddDescription(text) })
}

// ExperimentDeclareParameter declares a parameter through the open experiment.
func (b *Builder) ExperimentDeclareParameter(name, description string) error {
	return apply(b, b.ensureExperiment, fmt.Sprintf("could not declare parameter %q", name),
		func(c ports.ExperimentContext) error { return c.DeclareParameter(name, description) })
}

// ExperimentSetParameterValue sets a parameter value on the first open level of the
// experiment chain that accepts it. See ExperimentSetParameterValueWithDescription.
func (b *Builder) ExperimentSetParameterValue(name string, value any) error {
	return b.ExperimentSetParameterValueWithDescription(name, value, "")
}

// ExperimentSetParameterValueWithDescription offers the value to the open experiment, then
// to the open run set, then to the open run. The first level that accepts it keeps it.
// If every level rejects the value the last rejection is returned. Without an open
// experiment one is created first; open run sets and runs are left open.
func (b *Builder) ExperimentSetParameterValueWithDescription(name string, value any, description string) error {
	return b.do(func() error {
		if b.chain() == nil {
			if _, err := b.ensureExperiment(false); err != nil {
				return err
			}
		}

		f := b.chain()
		levels := []ports.ParameterContext{f.experiment}
		if f.runs != nil {
			levels = append(levels, f.runs.ctx)
			if f.runs.run != nil {
				levels = append(levels, f.runs.run)
			}
		}

		var last error
		for _, level := range levels {
			last = level.SetParameterValue(name, value, description)
			if last == nil {
				return nil
			}
			b.logger.Debug("parameter value rejected", "parameter", name, "error", last)
		}
		return b.failure(couldNotSet(fmt.Sprintf("parameter %q", name), value), last)
	})
}
