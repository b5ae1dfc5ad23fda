package hierarchy

import (
	"fmt"
	"reflect"

	"github.com/aretw0/flatexp/pkg/domain"
)

// properties is an ordered table of declared features or parameters.
type properties struct {
	items []domain.Property
}

func (p *properties) index(name string) int {
	for i, it := range p.items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

// declare adds the property, or fills in its description if it was declared implicitly.
func (p *properties) declare(name, description string) error {
	name, err := checkName(name)
	if err != nil {
		return err
	}
	if i := p.index(name); i >= 0 {
		switch {
		case p.items[i].Description == "":
			p.items[i].Description = description
		case description != "" && description != p.items[i].Description:
			return fmt.Errorf("%w: %q already declared as %q", ErrConflictingValue, name, p.items[i].Description)
		}
		return nil
	}
	p.items = append(p.items, domain.Property{Name: name, Description: description})
	return nil
}

// observe records value for name, declaring the property implicitly.
func (p *properties) observe(name string, value any) {
	i := p.index(name)
	if i < 0 {
		p.items = append(p.items, domain.Property{Name: name})
		i = len(p.items) - 1
	}
	for _, v := range p.items[i].Values {
		if reflect.DeepEqual(v, value) {
			return
		}
	}
	p.items[i].Values = append(p.items[i].Values, value)
}

func (p *properties) snapshot() []domain.Property {
	out := make([]domain.Property, len(p.items))
	for i, it := range p.items {
		it.Values = append([]any(nil), it.Values...)
		out[i] = it
	}
	return out
}

// settings is the value table of one context.
type settings struct {
	items domain.Settings
}

// set records value for name. Setting the same value twice is accepted; a different
// value is a conflict.
func (s *settings) set(name string, value any, description string) error {
	name, err := checkName(name)
	if err != nil {
		return err
	}
	if value == nil {
		return fmt.Errorf("%w: nil value for %q", ErrInvalidValue, name)
	}
	for i, it := range s.items {
		if it.Name != name {
			continue
		}
		if !reflect.DeepEqual(it.Value, value) {
			return fmt.Errorf("%w: %q is already %v", ErrConflictingValue, name, it.Value)
		}
		if description != "" {
			s.items[i].Description = description
		}
		return nil
	}
	s.items = append(s.items, domain.Setting{Name: name, Value: value, Description: description})
	return nil
}

func (s *settings) snapshot() domain.Settings {
	if len(s.items) == 0 {
		return nil
	}
	return append(domain.Settings(nil), s.items...)
}
