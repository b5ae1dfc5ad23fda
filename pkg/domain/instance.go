package domain

// Setting is a named value attached to an instance (feature) or to an experiment,
// run set or run (parameter).
type Setting struct {
	Name        string `json:"name" yaml:"name"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Settings is an ordered list of settings with unique names.
type Settings []Setting

// Get returns the value recorded for name.
func (s Settings) Get(name string) (any, bool) {
	for _, st := range s {
		if st.Name == name {
			return st.Value, true
		}
	}
	return nil, false
}

// Instance is a benchmark problem instance.
type Instance struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Features    Settings `json:"features,omitempty" yaml:"features,omitempty"`
	// LowerBounds and UpperBounds hold per-dimension value bounds keyed by dimension name.
	LowerBounds map[string]float64 `json:"lower_bounds,omitempty" yaml:"lower_bounds,omitempty"`
	UpperBounds map[string]float64 `json:"upper_bounds,omitempty" yaml:"upper_bounds,omitempty"`
}

// InstanceSet is the ordered set of instances of an experiment set.
type InstanceSet []Instance

// Find returns the instance with the given name.
func (s InstanceSet) Find(name string) (Instance, bool) {
	for _, in := range s {
		if in.Name == name {
			return in, true
		}
	}
	return Instance{}, false
}

// Property is a declared feature or parameter together with every value observed for it.
type Property struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Values      []any  `json:"values,omitempty" yaml:"values,omitempty"`
}

// FeatureSet lists the instance features of an experiment set.
type FeatureSet []Property

// Find returns the feature with the given name.
func (s FeatureSet) Find(name string) (Property, bool) {
	return findProperty(s, name)
}

// ParameterSet lists the experiment parameters of an experiment set.
type ParameterSet []Property

// Find returns the parameter with the given name.
func (s ParameterSet) Find(name string) (Property, bool) {
	return findProperty(s, name)
}

func findProperty(props []Property, name string) (Property, bool) {
	for _, p := range props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}
