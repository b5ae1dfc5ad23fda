package flat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flatexp/pkg/flat"
)

func TestBuilder_TransitionTable(t *testing.T) {
	type target struct {
		name   string
		phrase string
		begin  func(*flat.Builder, bool) error
		// from maps a start mode to the resulting mode; missing modes are illegal.
		from map[flat.Mode]flat.Mode
	}

	targets := []target{
		{
			name:   "dimension",
			phrase: "a dimension",
			begin:  (*flat.Builder).DimensionBegin,
			from: map[flat.Mode]flat.Mode{
				flat.ModeRoot:      flat.ModeDimension,
				flat.ModeDimension: flat.ModeDimension,
			},
		},
		{
			name:   "instance",
			phrase: "an instance",
			begin:  (*flat.Builder).InstanceBegin,
			from: map[flat.Mode]flat.Mode{
				flat.ModeRoot:      flat.ModeInstance,
				flat.ModeDimension: flat.ModeInstance,
				flat.ModeInstance:  flat.ModeInstance,
			},
		},
		{
			name:   "experiment",
			phrase: "an experiment",
			begin:  (*flat.Builder).ExperimentBegin,
			from: map[flat.Mode]flat.Mode{
				flat.ModeRoot:       flat.ModeExperiment,
				flat.ModeDimension:  flat.ModeExperiment,
				flat.ModeInstance:   flat.ModeExperiment,
				flat.ModeExperiment: flat.ModeExperiment,
				flat.ModeRunSet:     flat.ModeExperiment,
				flat.ModeRun:        flat.ModeExperiment,
			},
		},
		{
			name:   "run set",
			phrase: "a run set",
			begin:  (*flat.Builder).RunsBegin,
			from: map[flat.Mode]flat.Mode{
				flat.ModeExperiment: flat.ModeRunSet,
				flat.ModeRunSet:     flat.ModeRunSet,
				flat.ModeRun:        flat.ModeRunSet,
			},
		},
		{
			name:   "run",
			phrase: "a run",
			begin:  (*flat.Builder).RunBegin,
			from: map[flat.Mode]flat.Mode{
				flat.ModeRunSet: flat.ModeRun,
				flat.ModeRun:    flat.ModeRun,
			},
		},
	}

	for _, tg := range targets {
		for _, start := range allModes {
			for _, force := range []bool{false, true} {
				name := tg.name + "/from " + start.String()
				if force {
					name += "/forced"
				}
				t.Run(name, func(t *testing.T) {
					root := newFakeRoot()
					b := flat.New(root)
					driveTo(t, b, start)
					before := len(root.events)

					err := tg.begin(b, force)

					want, legal := tg.from[start]
					if !legal {
						require.Error(t, err)
						assert.ErrorIs(t, err, flat.ErrIllegalTransition)
						assert.Contains(t, err.Error(), "cannot begin "+tg.phrase)
						assert.Contains(t, err.Error(), start.String())
						assert.Equal(t, start, b.Mode(), "illegal transitions leave the mode unchanged")
						assert.Len(t, root.events, before, "illegal transitions do not reach the collaborator")
						return
					}
					require.NoError(t, err)
					assert.Equal(t, want, b.Mode())
				})
			}
		}
	}
}

func TestBuilder_IllegalMessageNamesTarget(t *testing.T) {
	b := flat.New(newFakeRoot())
	driveTo(t, b, flat.ModeExperiment)

	err := b.InstanceBegin(false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot begin an instance in mode EXPERIMENT")

	var e *flat.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, flat.ModeExperiment, e.Mode)
	assert.Nil(t, e.Cause)
	assert.True(t, len(e.Location) > 0 && e.Location[len(e.Location)-1] == '.')
}

func TestMode(t *testing.T) {
	names := []string{"ROOT", "DIMENSION", "INSTANCE", "EXPERIMENT", "RUN_SET", "RUN"}
	for i, m := range allModes {
		assert.Equal(t, names[i], m.String())
	}
	assert.Equal(t, "UNKNOWN", flat.Mode(42).String())

	assert.Equal(t, flat.ModeRunSet, flat.ModeRun.Parent())
	assert.Equal(t, flat.ModeExperiment, flat.ModeRunSet.Parent())
	assert.Equal(t, flat.ModeRoot, flat.ModeExperiment.Parent())
	assert.Equal(t, flat.ModeRoot, flat.ModeDimension.Parent())
	assert.Equal(t, flat.ModeRoot, flat.ModeRoot.Parent())
}
