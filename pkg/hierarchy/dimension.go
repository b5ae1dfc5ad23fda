package hierarchy

import (
	"fmt"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/ports"
)

type dimensionContext struct {
	root   *Builder
	closed bool
	dim    domain.Dimension
	parser ports.NumberParser
}

func (c *dimensionContext) check() error {
	if c.closed {
		return ErrClosed
	}
	return nil
}

func (c *dimensionContext) SetName(name string) error {
	if err := c.check(); err != nil {
		return err
	}
	name, err := checkName(name)
	if err != nil {
		return err
	}
	c.dim.Name = name
	return nil
}

func (c *dimensionContext) SetDescription(text string) error {
	if err := c.check(); err != nil {
		return err
	}
	c.dim.Description = text
	return nil
}

func (c *dimensionContext) AddDescription(text string) error {
	if err := c.check(); err != nil {
		return err
	}
	c.dim.Description = appendDescription(c.dim.Description, text)
	return nil
}

func (c *dimensionContext) SetDirection(direction domain.DimensionDirection) error {
	if err := c.check(); err != nil {
		return err
	}
	if !direction.Valid() {
		return fmt.Errorf("%w: direction %q", ErrInvalidValue, direction)
	}
	c.dim.Direction = direction
	return nil
}

func (c *dimensionContext) SetType(typ domain.DimensionType) error {
	if err := c.check(); err != nil {
		return err
	}
	if !typ.Valid() {
		return fmt.Errorf("%w: dimension type %q", ErrInvalidValue, typ)
	}
	c.dim.Type = typ
	return nil
}

func (c *dimensionContext) SetParser(parser ports.NumberParser) error {
	if err := c.check(); err != nil {
		return err
	}
	if parser == nil {
		return fmt.Errorf("%w: nil parser", ErrInvalidValue)
	}
	c.parser = parser
	return nil
}

// Close validates the dimension and commits it. The context is discarded either way.
func (c *dimensionContext) Close() error {
	if err := c.check(); err != nil {
		return err
	}
	c.closed = true
	c.root.endChild()

	switch {
	case c.dim.Name == "":
		return ErrMissingName
	case c.dim.Type == "":
		return fmt.Errorf("%w: dimension %q", ErrMissingType, c.dim.Name)
	case c.root.dimensionIndex(c.dim.Name) >= 0:
		return fmt.Errorf("%w: dimension %q", ErrDuplicateName, c.dim.Name)
	}

	if c.dim.Direction == "" {
		c.dim.Direction = domain.DirectionIncreasing
	}
	if c.parser == nil {
		c.parser = c.root.defaultParser
	}
	c.dim.Parser = c.parser.Name()
	c.dim.Index = len(c.root.dimensions)

	c.root.dimensions = append(c.root.dimensions, c.dim)
	c.root.dimensionParsers = append(c.root.dimensionParsers, c.parser)
	return nil
}
