package flat

import (
	"fmt"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/ports"
)

// DimensionBegin opens a dimension. Without forceNew an open dimension is reused.
func (b *Builder) DimensionBegin(forceNew bool) error {
	return begin(b, b.ensureDimension, forceNew)
}

// DimensionSetName names the open dimension, opening one when needed.
func (b *Builder) DimensionSetName(name string) error {
	return apply(b, b.ensureDimension, couldNotSet("the dimension name", fmt.Sprintf("%q", name)),
		func(d ports.DimensionContext) error {
			if err := d.SetName(name); err != nil {
				return err
			}
			b.open.(*dimensionFrame).name = name
			return nil
		})
}

// DimensionSetDescription replaces the description of the open dimension.
func (b *Builder) DimensionSetDescription(text string) error {
	return apply(b, b.ensureDimension, "could not set the dimension description",
		func(d ports.DimensionContext) error { return d.SetDescription(text) })
}

// DimensionAddDescription appends text to the description of the open dimension.
func (b *Builder) DimensionAddDescription(text string) error {
	return apply(b, b.ensureDimension, "could not extend the dimension description",
		func(d ports.DimensionContext) error { return d.AddDescription(text) })
}

// DimensionSetDirection sets whether values of the open dimension increase or decrease.
func (b *Builder) DimensionSetDirection(direction domain.DimensionDirection) error {
	return apply(b, b.ensureDimension, couldNotSet("the dimension direction", direction),
		func(d ports.DimensionContext) error { return d.SetDirection(direction) })
}

// DimensionSetType sets the kind of quantity the open dimension measures.
func (b *Builder) DimensionSetType(typ domain.DimensionType) error {
	return apply(b, b.ensureDimension, couldNotSet("the dimension type", typ),
		func(d ports.DimensionContext) error { return d.SetType(typ) })
}

// DimensionSetParser sets the parser that checks and reads values of the open dimension.
func (b *Builder) DimensionSetParser(parser ports.NumberParser) error {
	name := "<nil>"
	if parser != nil {
		name = parser.Name()
	}
	return apply(b, b.ensureDimension, couldNotSet("the dimension parser", name),
		func(d ports.DimensionContext) error { return d.SetParser(parser) })
}
