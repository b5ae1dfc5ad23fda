package hierarchy

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/ports"
)

type experimentContext struct {
	root       *Builder
	closed     bool
	childOpen  bool
	experiment domain.Experiment
	parameters settings
	// observed collects parameter values of committed run sets and runs; they reach the
	// root parameter table only when the experiment itself is committed.
	observed []domain.Setting
}

func (c *experimentContext) check() error {
	if c.closed {
		return ErrClosed
	}
	return nil
}

func (c *experimentContext) SetName(name string) error {
	if err := c.check(); err != nil {
		return err
	}
	name, err := checkName(name)
	if err != nil {
		return err
	}
	c.experiment.Name = name
	return nil
}

func (c *experimentContext) SetDescription(text string) error {
	if err := c.check(); err != nil {
		return err
	}
	c.experiment.Description = text
	return nil
}

func (c *experimentContext) AddDescription(text string) error {
	if err := c.check(); err != nil {
		return err
	}
	c.experiment.Description = appendDescription(c.experiment.Description, text)
	return nil
}

func (c *experimentContext) DeclareParameter(name, description string) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.root.parameters.declare(name, description)
}

func (c *experimentContext) SetParameterValue(name string, value any, description string) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.parameters.set(name, value, description)
}

func (c *experimentContext) CreateInstanceRuns() (ports.InstanceRunsContext, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if c.childOpen {
		return nil, ErrChildOpen
	}
	c.childOpen = true
	return &runsContext{experiment: c}, nil
}

// Close validates the experiment and commits it. The context is discarded either way.
func (c *experimentContext) Close() error {
	if err := c.check(); err != nil {
		return err
	}
	c.closed = true
	c.root.endChild()

	if c.childOpen {
		return fmt.Errorf("%w: experiment %q closed with an open run set", ErrChildOpen, c.experiment.Name)
	}
	if c.experiment.Name == "" {
		return ErrMissingName
	}
	if c.root.hasExperiment(c.experiment.Name) {
		return fmt.Errorf("%w: experiment %q", ErrDuplicateName, c.experiment.Name)
	}

	c.experiment.Parameters = c.parameters.snapshot()
	for _, p := range c.experiment.Parameters {
		c.root.parameters.observe(p.Name, p.Value)
	}
	for _, p := range c.observed {
		c.root.parameters.observe(p.Name, p.Value)
	}
	c.root.experiments = append(c.root.experiments, c.experiment)
	return nil
}

// commitRuns merges a closed run set into the experiment. Run sets on the same instance
// with the same parameters are merged.
func (c *experimentContext) commitRuns(rs domain.InstanceRuns) {
	c.observed = append(c.observed, rs.Parameters...)
	for _, r := range rs.Runs {
		c.observed = append(c.observed, r.Parameters...)
	}
	for i, existing := range c.experiment.Runs {
		if existing.Instance == rs.Instance && reflect.DeepEqual(existing.Parameters, rs.Parameters) {
			c.experiment.Runs[i].Runs = append(c.experiment.Runs[i].Runs, rs.Runs...)
			return
		}
	}
	c.experiment.Runs = append(c.experiment.Runs, rs)
}

type runsContext struct {
	experiment *experimentContext
	closed     bool
	childOpen  bool
	instance   string
	parameters settings
	runs       []domain.Run
}

func (c *runsContext) check() error {
	if c.closed {
		return ErrClosed
	}
	return nil
}

func (c *runsContext) root() *Builder {
	return c.experiment.root
}

func (c *runsContext) SetInstance(name string) error {
	if err := c.check(); err != nil {
		return err
	}
	name, err := checkName(name)
	if err != nil {
		return err
	}
	if !c.root().hasInstance(name) {
		return fmt.Errorf("%w: %q", ErrUnknownInstance, name)
	}
	if c.instance != "" && c.instance != name {
		return fmt.Errorf("%w: run set instance is already %q", ErrConflictingValue, c.instance)
	}
	c.instance = name
	return nil
}

func (c *runsContext) DeclareParameter(name, description string) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.root().parameters.declare(name, description)
}

func (c *runsContext) SetParameterValue(name string, value any, description string) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.parameters.set(name, value, description)
}

func (c *runsContext) CreateRun() (ports.RunContext, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if c.childOpen {
		return nil, ErrChildOpen
	}
	c.childOpen = true
	return &runContext{runs: c}, nil
}

// Close validates the run set and merges it into the experiment. The context is discarded either way.
func (c *runsContext) Close() error {
	if err := c.check(); err != nil {
		return err
	}
	c.closed = true
	c.experiment.childOpen = false

	if c.childOpen {
		return fmt.Errorf("%w: run set closed with an open run", ErrChildOpen)
	}
	if c.instance == "" {
		return ErrMissingInstance
	}
	c.experiment.commitRuns(domain.InstanceRuns{
		Instance:   c.instance,
		Parameters: c.parameters.snapshot(),
		Runs:       c.runs,
	})
	return nil
}

type runContext struct {
	runs       *runsContext
	closed     bool
	parameters settings
	points     []domain.DataPoint
}

func (c *runContext) check() error {
	if c.closed {
		return ErrClosed
	}
	return nil
}

func (c *runContext) DeclareParameter(name, description string) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.runs.root().parameters.declare(name, description)
}

func (c *runContext) SetParameterValue(name string, value any, description string) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.parameters.set(name, value, description)
}

func (c *runContext) AddDataPoint(point domain.DataPoint) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := c.validate(point); err != nil {
		return err
	}
	c.points = append(c.points, append(domain.DataPoint(nil), point...))
	return nil
}

func (c *runContext) AddDataPointValues(values ...float64) error {
	return c.AddDataPoint(domain.DataPoint(values))
}

func (c *runContext) AddDataPointText(text string) error {
	if err := c.check(); err != nil {
		return err
	}
	fields := strings.Fields(text)
	point := make(domain.DataPoint, len(fields))
	root := c.runs.root()
	for i, f := range fields {
		v, err := root.parserFor(i).Parse(f)
		if err != nil {
			return fmt.Errorf("%w: value %d of %q: %w", ErrInvalidValue, i, text, err)
		}
		point[i] = v
	}
	return c.AddDataPoint(point)
}

// validate checks arity, parsers and dimension directions against the previous point.
func (c *runContext) validate(point domain.DataPoint) error {
	root := c.runs.root()
	if len(point) == 0 {
		return fmt.Errorf("%w: empty data point", ErrArity)
	}
	if root.strictArity && len(point) != len(root.dimensions) {
		return fmt.Errorf("%w: got %d values for %d dimensions", ErrArity, len(point), len(root.dimensions))
	}

	var prev domain.DataPoint
	if n := len(c.points); n > 0 {
		prev = c.points[n-1]
	}
	for i, v := range point {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: value %d is NaN", ErrInvalidValue, i)
		}
		if err := root.parserFor(i).Check(v); err != nil {
			return fmt.Errorf("%w: value %d: %w", ErrInvalidValue, i, err)
		}
		if i >= len(root.dimensions) || i >= len(prev) {
			continue
		}
		if err := checkDirection(root.dimensions[i], prev[i], v); err != nil {
			return err
		}
	}
	return nil
}

func checkDirection(d domain.Dimension, prev, cur float64) error {
	var ok bool
	switch d.Direction {
	case domain.DirectionIncreasing:
		ok = cur >= prev
	case domain.DirectionIncreasingStrictly:
		ok = cur > prev
	case domain.DirectionDecreasing:
		ok = cur <= prev
	case domain.DirectionDecreasingStrictly:
		ok = cur < prev
	default:
		ok = true
	}
	if !ok {
		return fmt.Errorf("%w: %q is %s but %v follows %v", ErrDirection, d.Name, d.Direction, cur, prev)
	}
	return nil
}

// Close commits the run into its run set. The context is discarded either way.
func (c *runContext) Close() error {
	if err := c.check(); err != nil {
		return err
	}
	c.closed = true
	c.runs.childOpen = false

	if len(c.points) == 0 {
		return ErrEmptyRun
	}
	c.runs.runs = append(c.runs.runs, domain.Run{
		Parameters: c.parameters.snapshot(),
		DataPoints: c.points,
	})
	return nil
}
