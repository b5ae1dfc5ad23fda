package script

import (
	"fmt"
	"sort"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/flat"
)

type opFunc func(r *Runner, b *flat.Builder, s Step) error

var ops = map[string]opFunc{
	"flush": func(_ *Runner, b *flat.Builder, _ Step) error { return b.Flush() },

	"declare.feature": func(_ *Runner, b *flat.Builder, s Step) error {
		return b.DeclareFeature(s.Name, s.Description)
	},
	"declare.parameter": func(_ *Runner, b *flat.Builder, s Step) error {
		return b.DeclareParameter(s.Name, s.Description)
	},

	"dimension.begin":           func(_ *Runner, b *flat.Builder, s Step) error { return b.DimensionBegin(s.Force) },
	"dimension.end":             func(_ *Runner, b *flat.Builder, _ Step) error { return b.DimensionEnd() },
	"dimension.name":            withText((*flat.Builder).DimensionSetName),
	"dimension.description":     withText((*flat.Builder).DimensionSetDescription),
	"dimension.add_description": withText((*flat.Builder).DimensionAddDescription),
	"dimension.direction": func(_ *Runner, b *flat.Builder, s Step) error {
		v, err := text(s)
		if err != nil {
			return err
		}
		direction := domain.DimensionDirection(v)
		if !direction.Valid() {
			return fmt.Errorf("%w: unknown direction %q", ErrInvalidStep, v)
		}
		return b.DimensionSetDirection(direction)
	},
	"dimension.type": func(_ *Runner, b *flat.Builder, s Step) error {
		v, err := text(s)
		if err != nil {
			return err
		}
		typ := domain.DimensionType(v)
		if !typ.Valid() {
			return fmt.Errorf("%w: unknown dimension type %q", ErrInvalidStep, v)
		}
		return b.DimensionSetType(typ)
	},
	"dimension.parser": func(r *Runner, b *flat.Builder, s Step) error {
		v, err := text(s)
		if err != nil {
			return err
		}
		parser, err := r.registry.Lookup(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidStep, err)
		}
		return b.DimensionSetParser(parser)
	},

	"instance.begin":           func(_ *Runner, b *flat.Builder, s Step) error { return b.InstanceBegin(s.Force) },
	"instance.end":             func(_ *Runner, b *flat.Builder, _ Step) error { return b.InstanceEnd() },
	"instance.name":            withText((*flat.Builder).InstanceSetName),
	"instance.description":     withText((*flat.Builder).InstanceSetDescription),
	"instance.add_description": withText((*flat.Builder).InstanceAddDescription),
	"instance.declare_feature": func(_ *Runner, b *flat.Builder, s Step) error {
		return b.InstanceDeclareFeature(s.Name, s.Description)
	},
	"instance.feature": func(_ *Runner, b *flat.Builder, s Step) error {
		return b.InstanceSetFeatureValueWithDescription(s.Name, s.Value, s.Description)
	},
	"instance.lower": func(_ *Runner, b *flat.Builder, s Step) error {
		return b.InstanceSetLowerBound(s.Dimension, s.Value)
	},
	"instance.upper": func(_ *Runner, b *flat.Builder, s Step) error {
		return b.InstanceSetUpperBound(s.Dimension, s.Value)
	},

	"experiment.begin":           func(_ *Runner, b *flat.Builder, s Step) error { return b.ExperimentBegin(s.Force) },
	"experiment.end":             func(_ *Runner, b *flat.Builder, _ Step) error { return b.ExperimentEnd() },
	"experiment.name":            withText((*flat.Builder).ExperimentSetName),
	"experiment.description":     withText((*flat.Builder).ExperimentSetDescription),
	"experiment.add_description": withText((*flat.Builder).ExperimentAddDescription),
	"experiment.declare_parameter": func(_ *Runner, b *flat.Builder, s Step) error {
		return b.ExperimentDeclareParameter(s.Name, s.Description)
	},
	"experiment.parameter": func(_ *Runner, b *flat.Builder, s Step) error {
		return b.ExperimentSetParameterValueWithDescription(s.Name, s.Value, s.Description)
	},

	"runs.begin":    func(_ *Runner, b *flat.Builder, s Step) error { return b.RunsBegin(s.Force) },
	"runs.end":      func(_ *Runner, b *flat.Builder, _ Step) error { return b.RunsEnd() },
	"runs.instance": withText((*flat.Builder).RunsSetInstance),
	"runs.parameter": func(_ *Runner, b *flat.Builder, s Step) error {
		return b.RunsSetParameterValueWithDescription(s.Name, s.Value, s.Description)
	},

	"run.begin": func(_ *Runner, b *flat.Builder, s Step) error { return b.RunBegin(s.Force) },
	"run.end":   func(_ *Runner, b *flat.Builder, _ Step) error { return b.RunEnd() },
	"run.parameter": func(_ *Runner, b *flat.Builder, s Step) error {
		return b.RunSetParameterValueWithDescription(s.Name, s.Value, s.Description)
	},
	"run.point": func(_ *Runner, b *flat.Builder, s Step) error {
		switch {
		case len(s.Values) > 0 && s.Text != "":
			return fmt.Errorf("%w: run.point takes either values or text", ErrInvalidStep)
		case s.Text != "":
			return b.RunAddDataPointText(s.Text)
		case len(s.Values) > 0:
			return b.RunAddDataPoint(s.Values...)
		}
		return fmt.Errorf("%w: run.point needs values or text", ErrInvalidStep)
	},
}

// Ops returns the names of all supported operations, sorted.
func Ops() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func withText(set func(*flat.Builder, string) error) opFunc {
	return func(_ *Runner, b *flat.Builder, s Step) error {
		v, err := text(s)
		if err != nil {
			return err
		}
		return set(b, v)
	}
}

// text returns the step value as a string. Scalars written without quotes are accepted.
func text(s Step) (string, error) {
	switch v := s.Value.(type) {
	case string:
		return v, nil
	case nil:
		return "", fmt.Errorf("%w: %s needs a value", ErrInvalidStep, s.Op)
	case int, int64, float64, bool:
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("%w: %s needs a scalar value, got %T", ErrInvalidStep, s.Op, s.Value)
}
