package hierarchy

import (
	"fmt"
	"strings"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/numeric"
	"github.com/aretw0/flatexp/pkg/ports"
)

// Builder is the in-memory ports.ExperimentSetBuilder.
type Builder struct {
	strictArity   bool
	defaultParser ports.NumberParser

	closed    bool
	childOpen bool

	dimensions       domain.DimensionSet
	dimensionParsers []ports.NumberParser
	dimensionsFrozen bool

	instances       domain.InstanceSet
	instancesFrozen bool

	features   properties
	parameters properties

	experiments []domain.Experiment
}

var _ ports.ExperimentSetBuilder = (*Builder)(nil)

// Option configures the Builder.
type Option func(*Builder)

// WithStrictArity requires every data point to hold exactly one value per dimension.
func WithStrictArity() Option {
	return func(b *Builder) {
		b.strictArity = true
	}
}

// WithDefaultParser sets the parser given to dimensions that do not set one (default: double).
func WithDefaultParser(p ports.NumberParser) Option {
	return func(b *Builder) {
		b.defaultParser = p
	}
}

// New creates an empty builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		defaultParser: numeric.Double,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) checkOpen() error {
	if b.closed {
		return ErrClosed
	}
	return nil
}

// beginChild reserves the single child slot of the root.
func (b *Builder) beginChild() error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if b.childOpen {
		return ErrChildOpen
	}
	b.childOpen = true
	return nil
}

func (b *Builder) endChild() {
	b.childOpen = false
}

// CreateDimension opens a new dimension context.
func (b *Builder) CreateDimension() (ports.DimensionContext, error) {
	if err := b.checkOpen(); err != nil {
		return nil, err
	}
	if b.dimensionsFrozen {
		return nil, fmt.Errorf("%w: dimensions cannot be added once instances or experiments exist", ErrFrozen)
	}
	if err := b.beginChild(); err != nil {
		return nil, err
	}
	return &dimensionContext{root: b}, nil
}

// CreateInstance opens a new instance context. It freezes the dimension set.
func (b *Builder) CreateInstance() (ports.InstanceContext, error) {
	if err := b.checkOpen(); err != nil {
		return nil, err
	}
	if b.instancesFrozen {
		return nil, fmt.Errorf("%w: instances cannot be added once experiments exist", ErrFrozen)
	}
	if err := b.beginChild(); err != nil {
		return nil, err
	}
	b.dimensionsFrozen = true
	return &instanceContext{root: b}, nil
}

// CreateExperiment opens a new experiment context. It freezes dimensions, instances and features.
func (b *Builder) CreateExperiment() (ports.ExperimentContext, error) {
	if err := b.beginChild(); err != nil {
		return nil, err
	}
	b.dimensionsFrozen = true
	b.instancesFrozen = true
	return &experimentContext{root: b}, nil
}

// DeclareFeature declares an instance feature.
func (b *Builder) DeclareFeature(name, description string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if b.instancesFrozen {
		return fmt.Errorf("%w: features cannot be declared once experiments exist", ErrFrozen)
	}
	return b.features.declare(name, description)
}

// DeclareParameter declares an experiment parameter.
func (b *Builder) DeclareParameter(name, description string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	return b.parameters.declare(name, description)
}

// DimensionSet freezes and returns the dimension set.
func (b *Builder) DimensionSet() (domain.DimensionSet, error) {
	if err := b.checkOpen(); err != nil {
		return nil, err
	}
	if b.childOpen && !b.dimensionsFrozen {
		return nil, fmt.Errorf("%w: dimension set requested while a dimension is open", ErrChildOpen)
	}
	b.dimensionsFrozen = true
	return append(domain.DimensionSet{}, b.dimensions...), nil
}

// InstanceSet freezes and returns the instance set.
func (b *Builder) InstanceSet() (domain.InstanceSet, error) {
	if err := b.freezeInstances(); err != nil {
		return nil, err
	}
	out := make(domain.InstanceSet, len(b.instances))
	for i, in := range b.instances {
		out[i] = in.Clone()
	}
	return out, nil
}

// FeatureSet freezes the instance set and returns the declared features.
func (b *Builder) FeatureSet() (domain.FeatureSet, error) {
	if err := b.freezeInstances(); err != nil {
		return nil, err
	}
	return domain.FeatureSet(b.features.snapshot()), nil
}

func (b *Builder) freezeInstances() error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if b.childOpen && !b.instancesFrozen {
		return fmt.Errorf("%w: instance set requested while a dimension or instance is open", ErrChildOpen)
	}
	b.dimensionsFrozen = true
	b.instancesFrozen = true
	return nil
}

// ParameterSet returns the declared parameters and the values committed so far.
func (b *Builder) ParameterSet() (domain.ParameterSet, error) {
	if err := b.checkOpen(); err != nil {
		return nil, err
	}
	return domain.ParameterSet(b.parameters.snapshot()), nil
}

// Create finalizes the graph. The builder is closed afterwards.
func (b *Builder) Create() (*domain.ExperimentSet, error) {
	if err := b.checkOpen(); err != nil {
		return nil, err
	}
	if b.childOpen {
		return nil, ErrChildOpen
	}
	b.closed = true

	set := &domain.ExperimentSet{
		Dimensions:  b.dimensions,
		Instances:   b.instances,
		Features:    domain.FeatureSet(b.features.snapshot()),
		Parameters:  domain.ParameterSet(b.parameters.snapshot()),
		Experiments: b.experiments,
	}
	if set.Dimensions == nil {
		set.Dimensions = domain.DimensionSet{}
	}
	if set.Instances == nil {
		set.Instances = domain.InstanceSet{}
	}
	if set.Experiments == nil {
		set.Experiments = []domain.Experiment{}
	}
	b.release()
	return set.Clone(), nil
}

// Close discards the builder. Closing twice is an error.
func (b *Builder) Close() error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	b.closed = true
	b.release()
	return nil
}

func (b *Builder) release() {
	b.dimensions = nil
	b.dimensionParsers = nil
	b.instances = nil
	b.experiments = nil
	b.features = properties{}
	b.parameters = properties{}
}

func (b *Builder) dimensionIndex(name string) int {
	for i, d := range b.dimensions {
		if d.Name == name {
			return i
		}
	}
	return -1
}

func (b *Builder) hasInstance(name string) bool {
	_, ok := b.instances.Find(name)
	return ok
}

func (b *Builder) hasExperiment(name string) bool {
	for _, e := range b.experiments {
		if e.Name == name {
			return true
		}
	}
	return false
}

// parserFor returns the parser of the dimension at index i, or the default parser
// for values beyond the last dimension.
func (b *Builder) parserFor(i int) ports.NumberParser {
	if i < len(b.dimensionParsers) {
		return b.dimensionParsers[i]
	}
	return b.defaultParser
}

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidValue)
	}
	return name, nil
}

func appendDescription(current, text string) string {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return current
	case current == "":
		return text
	}
	return current + " " + text
}
