package domain

// DataPoint holds one value per dimension, in dimension index order.
type DataPoint []float64

// Run is one execution of an experiment's algorithm setup on an instance.
type Run struct {
	Parameters Settings    `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	DataPoints []DataPoint `json:"data_points" yaml:"data_points"`
}

// InstanceRuns groups the runs of one experiment on one instance.
type InstanceRuns struct {
	Instance   string   `json:"instance" yaml:"instance"`
	Parameters Settings `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Runs       []Run    `json:"runs" yaml:"runs"`
}

// Experiment is an algorithm setup and the runs collected for it.
type Experiment struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  Settings       `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Runs        []InstanceRuns `json:"runs,omitempty" yaml:"runs,omitempty"`
}

// RunCount returns the number of runs over all run sets.
func (e Experiment) RunCount() int {
	n := 0
	for _, rs := range e.Runs {
		n += len(rs.Runs)
	}
	return n
}

// ExperimentSet is the finalized experiment-data graph.
// Values handed out by builders are never modified afterwards and must be treated as read-only.
type ExperimentSet struct {
	Dimensions  DimensionSet `json:"dimensions" yaml:"dimensions"`
	Instances   InstanceSet  `json:"instances" yaml:"instances"`
	Features    FeatureSet   `json:"features,omitempty" yaml:"features,omitempty"`
	Parameters  ParameterSet `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Experiments []Experiment `json:"experiments" yaml:"experiments"`
}

// Experiment returns the experiment with the given name.
func (s *ExperimentSet) Experiment(name string) (Experiment, bool) {
	for _, e := range s.Experiments {
		if e.Name == name {
			return e, true
		}
	}
	return Experiment{}, false
}

// RunCount returns the number of runs over all experiments.
func (s *ExperimentSet) RunCount() int {
	n := 0
	for _, e := range s.Experiments {
		n += e.RunCount()
	}
	return n
}

// DataPointCount returns the number of data points over all runs.
func (s *ExperimentSet) DataPointCount() int {
	n := 0
	for _, e := range s.Experiments {
		for _, rs := range e.Runs {
			for _, r := range rs.Runs {
				n += len(r.DataPoints)
			}
		}
	}
	return n
}
