package registry

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/flatexp/pkg/numeric"
	"github.com/aretw0/flatexp/pkg/ports"
)

// Boundable is implemented by parsers that can be narrowed to a sub-range.
type Boundable interface {
	WithBounds(min, max float64) (*numeric.Parser, error)
}

// Registry manages the number parsers available to scripts and dimensions.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]ports.NumberParser
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]ports.NumberParser),
	}
}

// Default creates a registry holding the predefined numeric parsers.
func Default() *Registry {
	r := NewRegistry()
	for _, p := range []*numeric.Parser{
		numeric.Byte, numeric.Short, numeric.Int, numeric.Long, numeric.UInt,
		numeric.Float, numeric.Double,
	} {
		r.Register(p.Name(), p)
	}
	return r
}

// Register adds a parser to the registry.
// If a parser with the same name exists, it is overwritten.
func (r *Registry) Register(name string, p ports.NumberParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[name] = p
}

// Names returns the registered parser names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a parser reference. A reference is either a registered name ("int") or a
// registered name followed by inclusive bounds ("int[0,100]").
func (r *Registry) Lookup(ref string) (ports.NumberParser, error) {
	ref = strings.TrimSpace(ref)
	name, bounds, hasBounds := strings.Cut(ref, "[")

	r.mu.RLock()
	p, ok := r.parsers[strings.TrimSpace(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("parser not found: %s", name)
	}
	if !hasBounds {
		return p, nil
	}

	b, ok := p.(Boundable)
	if !ok {
		return nil, fmt.Errorf("parser %s does not accept bounds", name)
	}
	min, max, err := parseBounds(bounds)
	if err != nil {
		return nil, fmt.Errorf("invalid parser reference %q: %w", ref, err)
	}
	bounded, err := b.WithBounds(min, max)
	if err != nil {
		return nil, err
	}
	return bounded, nil
}

func parseBounds(s string) (float64, float64, error) {
	s, ok := strings.CutSuffix(strings.TrimSpace(s), "]")
	if !ok {
		return 0, 0, fmt.Errorf("missing closing bracket")
	}
	lo, hi, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("expected two bounds")
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("lower bound: %w", err)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("upper bound: %w", err)
	}
	return min, max, nil
}
