// Package script drives a flat builder from a YAML list of steps.
//
// A script names one builder operation per step:
//
//	name: scenario-a
//	steps:
//	  - op: dimension.begin
//	    force: true
//	  - op: dimension.name
//	    value: time
//	  - op: dimension.type
//	    value: time
//	  - op: run.point
//	    values: [1.0, 2.0]
//
// Ops lists the accepted operations.
package script

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownOp   = errors.New("unknown op")
	ErrInvalidStep = errors.New("invalid step")
	ErrNoSteps     = errors.New("script has no steps")
)

// Script is a decoded step list.
type Script struct {
	Name        string
	Description string
	Steps       []Step
}

// Step is one builder operation with its arguments. Which arguments apply depends on Op.
type Step struct {
	Op          string    `mapstructure:"op" yaml:"op"`
	Force       bool      `mapstructure:"force" yaml:"force,omitempty"`
	Name        string    `mapstructure:"name" yaml:"name,omitempty"`
	Dimension   string    `mapstructure:"dimension" yaml:"dimension,omitempty"`
	Value       any       `mapstructure:"value" yaml:"value,omitempty"`
	Values      []float64 `mapstructure:"values" yaml:"values,omitempty"`
	Text        string    `mapstructure:"text" yaml:"text,omitempty"`
	Description string    `mapstructure:"description" yaml:"description,omitempty"`
}

// StepError reports the step a script failed at.
type StepError struct {
	Index int // zero based
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("step %d: %v", e.Index+1, e.Err)
	}
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

type document struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Steps       []map[string]any `yaml:"steps"`
}

// Parse decodes a YAML script. Unknown step keys and unknown ops are rejected.
func Parse(data []byte) (*Script, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, ErrNoSteps
	}

	s := &Script{
		Name:        doc.Name,
		Description: doc.Description,
		Steps:       make([]Step, 0, len(doc.Steps)),
	}
	for i, raw := range doc.Steps {
		step, err := decodeStep(raw)
		if err != nil {
			op, _ := raw["op"].(string)
			return nil, &StepError{Index: i, Op: op, Err: err}
		}
		s.Steps = append(s.Steps, step)
	}
	return s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}

func decodeStep(raw map[string]any) (Step, error) {
	var step Step
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &step,
	})
	if err != nil {
		return step, err
	}
	if err := dec.Decode(raw); err != nil {
		return step, fmt.Errorf("%w: %v", ErrInvalidStep, err)
	}
	if step.Op == "" {
		return step, fmt.Errorf("%w: missing op", ErrInvalidStep)
	}
	if _, ok := ops[step.Op]; !ok {
		return step, fmt.Errorf("%w %q", ErrUnknownOp, step.Op)
	}
	return step, nil
}
