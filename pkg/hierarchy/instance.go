package hierarchy

import (
	"fmt"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/numeric"
)

type instanceContext struct {
	root     *Builder
	closed   bool
	instance domain.Instance
	features settings
}

func (c *instanceContext) check() error {
	if c.closed {
		return ErrClosed
	}
	return nil
}

func (c *instanceContext) SetName(name string) error {
	if err := c.check(); err != nil {
		return err
	}
	name, err := checkName(name)
	if err != nil {
		return err
	}
	c.instance.Name = name
	return nil
}

func (c *instanceContext) SetDescription(text string) error {
	if err := c.check(); err != nil {
		return err
	}
	c.instance.Description = text
	return nil
}

func (c *instanceContext) AddDescription(text string) error {
	if err := c.check(); err != nil {
		return err
	}
	c.instance.Description = appendDescription(c.instance.Description, text)
	return nil
}

func (c *instanceContext) DeclareFeature(name, description string) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.root.features.declare(name, description)
}

func (c *instanceContext) SetFeatureValue(name string, value any, description string) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.features.set(name, value, description)
}

func (c *instanceContext) SetLowerBound(dimension string, value any) error {
	if err := c.check(); err != nil {
		return err
	}
	v, err := c.bound(dimension, value)
	if err != nil {
		return err
	}
	if c.instance.LowerBounds == nil {
		c.instance.LowerBounds = make(map[string]float64)
	}
	c.instance.LowerBounds[dimension] = v
	return nil
}

func (c *instanceContext) SetUpperBound(dimension string, value any) error {
	if err := c.check(); err != nil {
		return err
	}
	v, err := c.bound(dimension, value)
	if err != nil {
		return err
	}
	if c.instance.UpperBounds == nil {
		c.instance.UpperBounds = make(map[string]float64)
	}
	c.instance.UpperBounds[dimension] = v
	return nil
}

// bound converts value with the parser of the named dimension.
func (c *instanceContext) bound(dimension string, value any) (float64, error) {
	i := c.root.dimensionIndex(dimension)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, dimension)
	}
	parser := c.root.parserFor(i)

	var (
		v   float64
		err error
	)
	if s, ok := value.(string); ok {
		v, err = parser.Parse(s)
	} else if v, err = numeric.ToFloat(value); err == nil {
		err = parser.Check(v)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: bound for dimension %q: %w", ErrInvalidValue, dimension, err)
	}
	return v, nil
}

// Close validates the instance and commits it. The context is discarded either way.
func (c *instanceContext) Close() error {
	if err := c.check(); err != nil {
		return err
	}
	c.closed = true
	c.root.endChild()

	if c.instance.Name == "" {
		return ErrMissingName
	}
	if c.root.hasInstance(c.instance.Name) {
		return fmt.Errorf("%w: instance %q", ErrDuplicateName, c.instance.Name)
	}
	for dim, lo := range c.instance.LowerBounds {
		if hi, ok := c.instance.UpperBounds[dim]; ok && lo > hi {
			return fmt.Errorf("%w: lower bound %v above upper bound %v for dimension %q", ErrInvalidValue, lo, hi, dim)
		}
	}

	c.instance.Features = c.features.snapshot()
	for _, f := range c.instance.Features {
		c.root.features.observe(f.Name, f.Value)
	}
	c.root.instances = append(c.root.instances, c.instance)
	return nil
}
