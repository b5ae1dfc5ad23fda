package domain

import "maps"

// Clone returns a deep copy of the experiment set.
// Setting values are copied by assignment; they are expected to be scalars.
func (s *ExperimentSet) Clone() *ExperimentSet {
	if s == nil {
		return nil
	}
	out := &ExperimentSet{
		Dimensions: append(DimensionSet(nil), s.Dimensions...),
		Instances:  make(InstanceSet, len(s.Instances)),
		Features:   cloneProperties(s.Features),
		Parameters: cloneProperties(s.Parameters),
	}
	for i, in := range s.Instances {
		out.Instances[i] = in.Clone()
	}
	if s.Experiments != nil {
		out.Experiments = make([]Experiment, len(s.Experiments))
		for i, e := range s.Experiments {
			out.Experiments[i] = e.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the instance.
func (in Instance) Clone() Instance {
	in.Features = append(Settings(nil), in.Features...)
	in.LowerBounds = maps.Clone(in.LowerBounds)
	in.UpperBounds = maps.Clone(in.UpperBounds)
	return in
}

// Clone returns a deep copy of the experiment.
func (e Experiment) Clone() Experiment {
	e.Parameters = append(Settings(nil), e.Parameters...)
	if e.Runs != nil {
		runs := make([]InstanceRuns, len(e.Runs))
		for i, rs := range e.Runs {
			runs[i] = rs.Clone()
		}
		e.Runs = runs
	}
	return e
}

// Clone returns a deep copy of the run set.
func (rs InstanceRuns) Clone() InstanceRuns {
	rs.Parameters = append(Settings(nil), rs.Parameters...)
	runs := make([]Run, len(rs.Runs))
	for i, r := range rs.Runs {
		runs[i] = r.Clone()
	}
	rs.Runs = runs
	return rs
}

// Clone returns a deep copy of the run.
func (r Run) Clone() Run {
	r.Parameters = append(Settings(nil), r.Parameters...)
	points := make([]DataPoint, len(r.DataPoints))
	for i, p := range r.DataPoints {
		points[i] = append(DataPoint(nil), p...)
	}
	r.DataPoints = points
	return r
}

func cloneProperties[S ~[]Property](props S) S {
	if props == nil {
		return nil
	}
	out := make(S, len(props))
	for i, p := range props {
		p.Values = append([]any(nil), p.Values...)
		out[i] = p
	}
	return out
}
