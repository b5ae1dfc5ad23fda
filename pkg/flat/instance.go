package flat

import (
	"fmt"

	"github.com/aretw0/flatexp/pkg/ports"
)

// InstanceBegin opens an instance, closing an open dimension first.
// Without forceNew an open instance is reused.
func (b *Builder) InstanceBegin(forceNew bool) error {
	return begin(b, b.ensureInstance, forceNew)
}

// InstanceSetName names the open instance, closing an open dimension first.
func (b *Builder) InstanceSetName(name string) error {
	return apply(b, b.ensureInstance, couldNotSet("the instance name", fmt.Sprintf("%q", name)),
		func(c ports.InstanceContext) error {
			if err := c.SetName(name); err != nil {
				return err
			}
			b.open.(*instanceFrame).name = name
			return nil
		})
}

// InstanceSetDescription replaces the description of the open instance.
func (b *Builder) InstanceSetDescription(text string) error {
	return apply(b, b.ensureInstance, "could not set the instance description",
		func(c ports.InstanceContext) error { return c.SetDescription(text) })
}

// InstanceAddDescription appends text to the description of the open instance.
func (b *Builder) InstanceAddDescription(text string) error {
	return apply(b, b.ensureInstance, "could not extend the instance description",
		func(c ports.InstanceContext) error { return c.AddDescription(text) })
}

// InstanceDeclareFeature declares a feature through the open instance.
func (b *Builder) InstanceDeclareFeature(name, description string) error {
	return apply(b, b.ensureInstance, fmt.Sprintf("could not declare feature %q", name),
		func(c ports.InstanceContext) error { return c.DeclareFeature(name, description) })
}

// InstanceSetFeatureValue records a feature value on the open instance.
func (b *Builder) InstanceSetFeatureValue(name string, value any) error {
	return b.InstanceSetFeatureValueWithDescription(name, value, "")
}

// InstanceSetFeatureValueWithDescription is InstanceSetFeatureValue with a feature description.
func (b *Builder) InstanceSetFeatureValueWithDescription(name string, value any, description string) error {
	return apply(b, b.ensureInstance, couldNotSet(fmt.Sprintf("feature %q", name), value),
		func(c ports.InstanceContext) error { return c.SetFeatureValue(name, value, description) })
}

// InstanceSetLowerBound sets the lower bound of the instance in the named dimension.
func (b *Builder) InstanceSetLowerBound(dimension string, value any) error {
	return apply(b, b.ensureInstance, couldNotSet(fmt.Sprintf("the lower bound of %q", dimension), value),
		func(c ports.InstanceContext) error { return c.SetLowerBound(dimension, value) })
}

// InstanceSetUpperBound sets the upper bound of the instance in the named dimension.
func (b *Builder) InstanceSetUpperBound(dimension string, value any) error {
	return apply(b, b.ensureInstance, couldNotSet(fmt.Sprintf("the upper bound of %q", dimension), value),
		func(c ports.InstanceContext) error { return c.SetUpperBound(dimension, value) })
}
