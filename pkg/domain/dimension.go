package domain

// DimensionDirection defines how values of a dimension evolve along a run.
type DimensionDirection string

const (
	DirectionIncreasing         DimensionDirection = "increasing"
	DirectionIncreasingStrictly DimensionDirection = "increasing_strictly"
	DirectionDecreasing         DimensionDirection = "decreasing"
	DirectionDecreasingStrictly DimensionDirection = "decreasing_strictly"
)

// Valid reports whether d is one of the known directions.
func (d DimensionDirection) Valid() bool {
	switch d {
	case DirectionIncreasing, DirectionIncreasingStrictly, DirectionDecreasing, DirectionDecreasingStrictly:
		return true
	}
	return false
}

// IsIncreasing reports whether values grow along a run.
func (d DimensionDirection) IsIncreasing() bool {
	return d == DirectionIncreasing || d == DirectionIncreasingStrictly
}

// IsStrict reports whether two consecutive values must differ.
func (d DimensionDirection) IsStrict() bool {
	return d == DirectionIncreasingStrictly || d == DirectionDecreasingStrictly
}

// DimensionType classifies what a dimension measures.
type DimensionType string

const (
	DimensionTypeIterationFE               DimensionType = "iteration_fe"
	DimensionTypeIterationStep             DimensionType = "iteration_step"
	DimensionTypeIterationSubStep          DimensionType = "iteration_sub_step"
	DimensionTypeTime                      DimensionType = "time"
	DimensionTypeTimeNormalized            DimensionType = "time_normalized"
	DimensionTypeQualityProblemDependent   DimensionType = "quality_problem_dependent"
	DimensionTypeQualityProblemIndependent DimensionType = "quality_problem_independent"
)

// Valid reports whether t is one of the known dimension types.
func (t DimensionType) Valid() bool {
	switch t {
	case DimensionTypeIterationFE, DimensionTypeIterationStep, DimensionTypeIterationSubStep,
		DimensionTypeTime, DimensionTypeTimeNormalized,
		DimensionTypeQualityProblemDependent, DimensionTypeQualityProblemIndependent:
		return true
	}
	return false
}

// IsTime reports whether the dimension measures elapsed time.
func (t DimensionType) IsTime() bool {
	return t == DimensionTypeTime || t == DimensionTypeTimeNormalized
}

// IsIteration reports whether the dimension counts algorithm steps.
func (t DimensionType) IsIteration() bool {
	return t == DimensionTypeIterationFE || t == DimensionTypeIterationStep || t == DimensionTypeIterationSubStep
}

// IsQuality reports whether the dimension measures solution quality.
func (t DimensionType) IsQuality() bool {
	return t == DimensionTypeQualityProblemDependent || t == DimensionTypeQualityProblemIndependent
}

// Dimension is a measured axis of the data points in every run.
type Dimension struct {
	Index       int                `json:"index" yaml:"index"`
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Direction   DimensionDirection `json:"direction" yaml:"direction"`
	Type        DimensionType      `json:"type" yaml:"type"`
	// Parser is the name of the number parser that validates values of this dimension.
	Parser string `json:"parser" yaml:"parser"`
}

// DimensionSet is the ordered set of dimensions of an experiment set.
type DimensionSet []Dimension

// Find returns the dimension with the given name.
func (s DimensionSet) Find(name string) (Dimension, bool) {
	for _, d := range s {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

// Names returns the dimension names in index order.
func (s DimensionSet) Names() []string {
	names := make([]string, len(s))
	for i, d := range s {
		names[i] = d.Name
	}
	return names
}
