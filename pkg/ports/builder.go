package ports

import "github.com/aretw0/flatexp/pkg/domain"

// ExperimentSetBuilder is the root of the hierarchical construction API.
// At most one child context obtained from it should be open at a time.
type ExperimentSetBuilder interface {
	CreateDimension() (DimensionContext, error)
	CreateInstance() (InstanceContext, error)
	CreateExperiment() (ExperimentContext, error)

	DeclareFeature(name, description string) error
	DeclareParameter(name, description string) error

	// DimensionSet, InstanceSet, FeatureSet and ParameterSet return snapshots of the
	// respective sets. Requesting a set may freeze it against further additions.
	DimensionSet() (domain.DimensionSet, error)
	InstanceSet() (domain.InstanceSet, error)
	FeatureSet() (domain.FeatureSet, error)
	ParameterSet() (domain.ParameterSet, error)

	// Create finalizes the graph. The builder cannot be used afterwards.
	Create() (*domain.ExperimentSet, error)

	// Close discards the builder and everything accumulated in it.
	Close() error
}

// DescribedContext holds the naming operations shared by named levels.
type DescribedContext interface {
	SetName(name string) error
	SetDescription(text string) error
	AddDescription(text string) error
}

// DimensionContext configures one dimension.
type DimensionContext interface {
	DescribedContext
	SetDirection(direction domain.DimensionDirection) error
	SetType(typ domain.DimensionType) error
	SetParser(parser NumberParser) error
	Close() error
}

// InstanceContext configures one benchmark instance.
type InstanceContext interface {
	DescribedContext
	DeclareFeature(name, description string) error
	// SetFeatureValue records value for the feature. description describes the value and may be empty.
	SetFeatureValue(name string, value any, description string) error
	SetLowerBound(dimension string, value any) error
	SetUpperBound(dimension string, value any) error
	Close() error
}

// ParameterContext is implemented by every level that accepts parameter values.
type ParameterContext interface {
	DeclareParameter(name, description string) error
	// SetParameterValue records value for the parameter. description describes the value and may be empty.
	SetParameterValue(name string, value any, description string) error
}

// ExperimentContext configures one experiment.
type ExperimentContext interface {
	DescribedContext
	ParameterContext
	CreateInstanceRuns() (InstanceRunsContext, error)
	Close() error
}

// InstanceRunsContext collects the runs of an experiment on one instance.
type InstanceRunsContext interface {
	ParameterContext
	SetInstance(name string) error
	CreateRun() (RunContext, error)
	Close() error
}

// RunContext collects the data points of one run.
type RunContext interface {
	ParameterContext
	AddDataPoint(point domain.DataPoint) error
	AddDataPointValues(values ...float64) error
	// AddDataPointText parses a whitespace separated list of values.
	AddDataPointText(text string) error
	Close() error
}
