package flat

import (
	"fmt"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/ports"
)

// RunsBegin opens a run set in the open experiment, closing an open run first.
// Without forceNew an open run set is reused.
func (b *Builder) RunsBegin(forceNew bool) error {
	return begin(b, b.ensureRunSet, forceNew)
}

// RunsSetInstance names the instance the open run set was measured on.
func (b *Builder) RunsSetInstance(name string) error {
	return apply(b, b.ensureRunSet, couldNotSet("the run set instance", fmt.Sprintf("%q", name)),
		func(c ports.InstanceRunsContext) error {
			if err := c.SetInstance(name); err != nil {
				return err
			}
			b.chain().runs.instance = name
			return nil
		})
}

// RunsSetInstanceOf is RunsSetInstance with the name of instance.
func (b *Builder) RunsSetInstanceOf(instance domain.Instance) error {
	return b.RunsSetInstance(instance.Name)
}

// RunsSetParameterValue records a parameter value on the open run set.
func (b *Builder) RunsSetParameterValue(name string, value any) error {
	return b.RunsSetParameterValueWithDescription(name, value, "")
}

// RunsSetParameterValueWithDescription is RunsSetParameterValue with a parameter description.
func (b *Builder) RunsSetParameterValueWithDescription(name string, value any, description string) error {
	return apply(b, b.ensureRunSet, couldNotSet(fmt.Sprintf("parameter %q", name), value),
		func(c ports.InstanceRunsContext) error { return c.SetParameterValue(name, value, description) })
}

// RunBegin opens a run in the open run set. Without forceNew an open run is reused.
func (b *Builder) RunBegin(forceNew bool) error {
	return begin(b, b.ensureRun, forceNew)
}

// RunSetParameterValue records a parameter value on the open run.
func (b *Builder) RunSetParameterValue(name string, value any) error {
	return b.RunSetParameterValueWithDescription(name, value, "")
}

// RunSetParameterValueWithDescription is RunSetParameterValue with a parameter description.
func (b *Builder) RunSetParameterValueWithDescription(name string, value any, description string) error {
	return apply(b, b.ensureRun, couldNotSet(fmt.Sprintf("parameter %q", name), value),
		func(c ports.RunContext) error { return c.SetParameterValue(name, value, description) })
}

// RunAddDataPoint appends a data point holding values, one per dimension.
func (b *Builder) RunAddDataPoint(values ...float64) error {
	return apply(b, b.ensureRun, fmt.Sprintf("could not add data point %v", values),
		func(c ports.RunContext) error { return c.AddDataPointValues(values...) })
}

// RunAddDataPointFrom appends point.
func (b *Builder) RunAddDataPointFrom(point domain.DataPoint) error {
	return apply(b, b.ensureRun, fmt.Sprintf("could not add data point %v", []float64(point)),
		func(c ports.RunContext) error { return c.AddDataPoint(point) })
}

// RunAddDataPointText parses text as a whitespace separated data point and appends it.
func (b *Builder) RunAddDataPointText(text string) error {
	return apply(b, b.ensureRun, fmt.Sprintf("could not add data point %q", text),
		func(c ports.RunContext) error { return c.AddDataPointText(text) })
}
