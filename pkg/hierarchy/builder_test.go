package hierarchy_test

import (
	"testing"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/hierarchy"
	"github.com/aretw0/flatexp/pkg/numeric"
	"github.com/aretw0/flatexp/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addDimension(t *testing.T, b *hierarchy.Builder, name string, typ domain.DimensionType, parser ports.NumberParser) {
	t.Helper()
	d, err := b.CreateDimension()
	require.NoError(t, err)
	require.NoError(t, d.SetName(name))
	require.NoError(t, d.SetType(typ))
	if parser != nil {
		require.NoError(t, d.SetParser(parser))
	}
	require.NoError(t, d.Close())
}

func addInstance(t *testing.T, b *hierarchy.Builder, name string) {
	t.Helper()
	in, err := b.CreateInstance()
	require.NoError(t, err)
	require.NoError(t, in.SetName(name))
	require.NoError(t, in.Close())
}

func TestBuilder_FullGraph(t *testing.T) {
	b := hierarchy.New()

	addDimension(t, b, "fes", domain.DimensionTypeIterationFE, numeric.Long)
	addDimension(t, b, "f", domain.DimensionTypeQualityProblemDependent, nil)

	in, err := b.CreateInstance()
	require.NoError(t, err)
	require.NoError(t, in.SetName("tsp-10"))
	require.NoError(t, in.SetDescription("A tour"))
	require.NoError(t, in.AddDescription("over 10 cities."))
	require.NoError(t, in.DeclareFeature("n", "number of cities"))
	require.NoError(t, in.SetFeatureValue("n", 10, ""))
	require.NoError(t, in.SetLowerBound("f", "0"))
	require.NoError(t, in.SetUpperBound("f", 1000))
	require.NoError(t, in.Close())

	exp, err := b.CreateExperiment()
	require.NoError(t, err)
	require.NoError(t, exp.SetName("ea"))
	require.NoError(t, exp.DeclareParameter("mu", "population size"))
	require.NoError(t, exp.SetParameterValue("mu", 16, "small"))

	runs, err := exp.CreateInstanceRuns()
	require.NoError(t, err)
	require.NoError(t, runs.SetInstance("tsp-10"))

	run, err := runs.CreateRun()
	require.NoError(t, err)
	require.NoError(t, run.AddDataPointValues(1, 400))
	require.NoError(t, run.AddDataPointText("10 420.5"))
	require.NoError(t, run.AddDataPoint(domain.DataPoint{20, 500}))
	require.NoError(t, run.Close())
	require.NoError(t, runs.Close())
	require.NoError(t, exp.Close())

	set, err := b.Create()
	require.NoError(t, err)

	require.Len(t, set.Dimensions, 2)
	assert.Equal(t, 1, set.Dimensions[1].Index)
	assert.Equal(t, "long", set.Dimensions[0].Parser)
	assert.Equal(t, "double", set.Dimensions[1].Parser, "default parser")
	assert.Equal(t, domain.DirectionIncreasing, set.Dimensions[0].Direction, "default direction")

	inst, ok := set.Instances.Find("tsp-10")
	require.True(t, ok)
	assert.Equal(t, "A tour over 10 cities.", inst.Description)
	assert.Equal(t, 0.0, inst.LowerBounds["f"])
	assert.Equal(t, 1000.0, inst.UpperBounds["f"])

	feat, ok := set.Features.Find("n")
	require.True(t, ok)
	assert.Equal(t, "number of cities", feat.Description)
	assert.Equal(t, []any{10}, feat.Values)

	param, ok := set.Parameters.Find("mu")
	require.True(t, ok)
	assert.Equal(t, []any{16}, param.Values)

	e, ok := set.Experiment("ea")
	require.True(t, ok)
	require.Len(t, e.Runs, 1)
	assert.Equal(t, "tsp-10", e.Runs[0].Instance)
	assert.Equal(t, 1, e.RunCount())
	assert.Equal(t, 3, set.DataPointCount())

	_, err = b.CreateDimension()
	assert.ErrorIs(t, err, hierarchy.ErrClosed, "builder is finalized")
}

func TestBuilder_Freezing(t *testing.T) {
	b := hierarchy.New()
	addDimension(t, b, "t", domain.DimensionTypeTime, nil)
	addInstance(t, b, "i1")

	_, err := b.CreateDimension()
	assert.ErrorIs(t, err, hierarchy.ErrFrozen)

	exp, err := b.CreateExperiment()
	require.NoError(t, err)
	_, err = b.CreateExperiment()
	assert.ErrorIs(t, err, hierarchy.ErrChildOpen, "only one child may be open")
	require.NoError(t, exp.SetName("e"))
	require.NoError(t, exp.Close())

	_, err = b.CreateInstance()
	assert.ErrorIs(t, err, hierarchy.ErrFrozen)
	assert.ErrorIs(t, b.DeclareFeature("late", ""), hierarchy.ErrFrozen)
	assert.NoError(t, b.DeclareParameter("late", ""), "parameters stay open until Create")
}

func TestBuilder_SetRequestsWhileChildOpen(t *testing.T) {
	b := hierarchy.New()
	d, err := b.CreateDimension()
	require.NoError(t, err)

	_, err = b.DimensionSet()
	assert.ErrorIs(t, err, hierarchy.ErrChildOpen)
	_, err = b.InstanceSet()
	assert.ErrorIs(t, err, hierarchy.ErrChildOpen)

	require.NoError(t, d.SetName("t"))
	require.NoError(t, d.SetType(domain.DimensionTypeTime))
	require.NoError(t, d.Close())

	dims, err := b.DimensionSet()
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, dims.Names())

	_, err = b.CreateDimension()
	assert.ErrorIs(t, err, hierarchy.ErrFrozen, "requesting the set freezes it")
}

func TestBuilder_CloseValidation(t *testing.T) {
	t.Run("dimension without name", func(t *testing.T) {
		b := hierarchy.New()
		d, err := b.CreateDimension()
		require.NoError(t, err)
		assert.ErrorIs(t, d.Close(), hierarchy.ErrMissingName)
		assert.ErrorIs(t, d.Close(), hierarchy.ErrClosed, "failed close still discards")

		dims, err := b.DimensionSet()
		require.NoError(t, err)
		assert.Empty(t, dims)
	})

	t.Run("dimension without type", func(t *testing.T) {
		b := hierarchy.New()
		d, err := b.CreateDimension()
		require.NoError(t, err)
		require.NoError(t, d.SetName("t"))
		assert.ErrorIs(t, d.Close(), hierarchy.ErrMissingType)
	})

	t.Run("duplicate instance", func(t *testing.T) {
		b := hierarchy.New()
		addInstance(t, b, "i1")
		in, err := b.CreateInstance()
		require.NoError(t, err)
		require.NoError(t, in.SetName("i1"))
		assert.ErrorIs(t, in.Close(), hierarchy.ErrDuplicateName)
	})

	t.Run("inverted bounds", func(t *testing.T) {
		b := hierarchy.New()
		addDimension(t, b, "f", domain.DimensionTypeQualityProblemDependent, nil)
		in, err := b.CreateInstance()
		require.NoError(t, err)
		require.NoError(t, in.SetName("i1"))
		require.NoError(t, in.SetLowerBound("f", 5))
		require.NoError(t, in.SetUpperBound("f", 1))
		assert.ErrorIs(t, in.Close(), hierarchy.ErrInvalidValue)
	})

	t.Run("run set without instance", func(t *testing.T) {
		b := hierarchy.New()
		exp, err := b.CreateExperiment()
		require.NoError(t, err)
		runs, err := exp.CreateInstanceRuns()
		require.NoError(t, err)
		assert.ErrorIs(t, runs.Close(), hierarchy.ErrMissingInstance)
	})

	t.Run("empty run", func(t *testing.T) {
		b := hierarchy.New()
		addInstance(t, b, "i1")
		exp, err := b.CreateExperiment()
		require.NoError(t, err)
		runs, err := exp.CreateInstanceRuns()
		require.NoError(t, err)
		run, err := runs.CreateRun()
		require.NoError(t, err)
		assert.ErrorIs(t, run.Close(), hierarchy.ErrEmptyRun)

		_, err = runs.CreateRun()
		assert.NoError(t, err, "failed close frees the child slot")
	})

	t.Run("experiment with open run set", func(t *testing.T) {
		b := hierarchy.New()
		exp, err := b.CreateExperiment()
		require.NoError(t, err)
		require.NoError(t, exp.SetName("e"))
		_, err = exp.CreateInstanceRuns()
		require.NoError(t, err)
		assert.ErrorIs(t, exp.Close(), hierarchy.ErrChildOpen)

		_, err = b.CreateExperiment()
		assert.NoError(t, err)
	})
}

func TestBuilder_Bounds(t *testing.T) {
	b := hierarchy.New()
	bounded, err := numeric.Int.WithBounds(0, 10)
	require.NoError(t, err)
	addDimension(t, b, "steps", domain.DimensionTypeIterationStep, bounded)

	in, err := b.CreateInstance()
	require.NoError(t, err)
	assert.ErrorIs(t, in.SetLowerBound("nope", 1), hierarchy.ErrUnknownDimension)
	assert.ErrorIs(t, in.SetLowerBound("steps", 11), numeric.ErrOutOfRange)
	assert.ErrorIs(t, in.SetLowerBound("steps", "1.5"), numeric.ErrNotIntegral)
	assert.ErrorIs(t, in.SetUpperBound("steps", true), hierarchy.ErrInvalidValue)
	assert.NoError(t, in.SetUpperBound("steps", int64(10)))
}

func TestBuilder_ParameterConflicts(t *testing.T) {
	b := hierarchy.New()
	addInstance(t, b, "i1")

	exp, err := b.CreateExperiment()
	require.NoError(t, err)
	require.NoError(t, exp.SetName("e"))
	require.NoError(t, exp.SetParameterValue("mu", 4, ""))
	require.NoError(t, exp.SetParameterValue("mu", 4, "again"), "same value is accepted")
	assert.ErrorIs(t, exp.SetParameterValue("mu", 8, ""), hierarchy.ErrConflictingValue)
	assert.ErrorIs(t, exp.SetParameterValue("mu", nil, ""), hierarchy.ErrInvalidValue)

	runs, err := exp.CreateInstanceRuns()
	require.NoError(t, err)
	require.NoError(t, runs.SetInstance("i1"))
	assert.ErrorIs(t, runs.SetInstance("i2"), hierarchy.ErrUnknownInstance)
	require.NoError(t, runs.SetParameterValue("mu", 8, ""), "run sets hold their own values")

	run, err := runs.CreateRun()
	require.NoError(t, err)
	require.NoError(t, run.SetParameterValue("seed", 1, ""))
	require.NoError(t, run.AddDataPointValues(1))
	require.NoError(t, run.Close())
	require.NoError(t, runs.Close())
	require.NoError(t, exp.Close())

	params, err := b.ParameterSet()
	require.NoError(t, err)
	mu, ok := params.Find("mu")
	require.True(t, ok)
	assert.ElementsMatch(t, []any{4, 8}, mu.Values)
	_, ok = params.Find("seed")
	assert.True(t, ok, "run parameters are declared implicitly")
}

func TestBuilder_DataPoints(t *testing.T) {
	newRun := func(t *testing.T, opts ...hierarchy.Option) ports.RunContext {
		t.Helper()
		b := hierarchy.New(opts...)
		addDimension(t, b, "fes", domain.DimensionTypeIterationFE, numeric.Long)
		d, err := b.CreateDimension()
		require.NoError(t, err)
		require.NoError(t, d.SetName("f"))
		require.NoError(t, d.SetType(domain.DimensionTypeQualityProblemDependent))
		require.NoError(t, d.SetDirection(domain.DirectionDecreasingStrictly))
		require.NoError(t, d.Close())
		addInstance(t, b, "i1")

		exp, err := b.CreateExperiment()
		require.NoError(t, err)
		runs, err := exp.CreateInstanceRuns()
		require.NoError(t, err)
		run, err := runs.CreateRun()
		require.NoError(t, err)
		return run
	}

	t.Run("lenient arity", func(t *testing.T) {
		run := newRun(t)
		assert.NoError(t, run.AddDataPointValues(1))
		assert.NoError(t, run.AddDataPointValues(2, 5, 7))
	})

	t.Run("strict arity", func(t *testing.T) {
		run := newRun(t, hierarchy.WithStrictArity())
		assert.ErrorIs(t, run.AddDataPointValues(1), hierarchy.ErrArity)
		assert.NoError(t, run.AddDataPointValues(1, 9))
	})

	t.Run("direction", func(t *testing.T) {
		run := newRun(t)
		require.NoError(t, run.AddDataPointValues(1, 9))
		assert.ErrorIs(t, run.AddDataPointValues(0, 8), hierarchy.ErrDirection, "fes must not decrease")
		assert.ErrorIs(t, run.AddDataPointValues(2, 9), hierarchy.ErrDirection, "f must strictly decrease")
		assert.NoError(t, run.AddDataPointValues(2, 8))
	})

	t.Run("parsers", func(t *testing.T) {
		run := newRun(t)
		assert.ErrorIs(t, run.AddDataPointValues(1.5, 3), numeric.ErrNotIntegral)
		assert.ErrorIs(t, run.AddDataPointText("1 x"), numeric.ErrSyntax)
		assert.ErrorIs(t, run.AddDataPointText(""), hierarchy.ErrArity)
		assert.NoError(t, run.AddDataPointText(" 3\t2.5 "))
	})
}

func TestBuilder_Close(t *testing.T) {
	b := hierarchy.New()
	addInstance(t, b, "i1")
	require.NoError(t, b.Close())
	assert.ErrorIs(t, b.Close(), hierarchy.ErrClosed)
	_, err := b.Create()
	assert.ErrorIs(t, err, hierarchy.ErrClosed)
}
