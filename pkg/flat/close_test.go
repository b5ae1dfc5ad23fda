package flat_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flatexp/pkg/flat"
)

func TestBuilder_CascadeCloseFailures(t *testing.T) {
	errRun := errors.New("run rejected")
	errRuns := errors.New("run set rejected")

	root := newFakeRoot()
	root.fail["close:run"] = errRun
	root.fail["close:runs"] = errRuns
	b := flat.New(root)
	driveTo(t, b, flat.ModeRun)

	err := b.ExperimentEnd()
	require.Error(t, err)

	assert.Equal(t, flat.ModeRoot, b.Mode(), "every level resets even when closing fails")
	assert.Equal(t, 1, root.count("close:experiment#1"), "the unwind goes on after a failure")
	assert.ErrorIs(t, err, flat.ErrCollaboratorFailure)
	assert.ErrorIs(t, err, errRun)
	assert.ErrorIs(t, err, errRuns)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	errs := joined.Unwrap()
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], errRun, "the innermost failure comes first")
	assert.ErrorIs(t, errs[1], errRuns)

	var first *flat.Error
	require.ErrorAs(t, errs[0], &first)
	assert.Equal(t, flat.ModeRun, first.Mode)
	assert.Equal(t, flat.KindCollaboratorFailure, first.Kind)

	// The builder stays usable.
	require.NoError(t, b.ExperimentBegin(false))
	assert.Equal(t, 1, root.count("create:experiment#2"))
}

func TestBuilder_SingleCloseFailureIsNotJoined(t *testing.T) {
	root := newFakeRoot()
	root.fail["close:run"] = errBoom
	b := flat.New(root)
	driveTo(t, b, flat.ModeRun)

	err := b.Flush()
	require.Error(t, err)

	var e *flat.Error
	require.True(t, errors.As(err, &e))
	assert.Same(t, e, err.(*flat.Error))
	assert.Equal(t, flat.ModeRoot, b.Mode())
}

func TestBuilder_ForceNewAfterCloseFailure(t *testing.T) {
	root := newFakeRoot()
	root.fail["close:dimension"] = errBoom
	b := flat.New(root)
	driveTo(t, b, flat.ModeDimension)

	err := b.DimensionBegin(true)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, flat.ModeRoot, b.Mode())
	assert.Zero(t, root.count("create:dimension#2"), "no replacement after a failed close")

	require.NoError(t, b.DimensionBegin(false))
	assert.Equal(t, 1, root.count("create:dimension#2"))
}

func TestBuilder_CascadeBeforeCreateFailure(t *testing.T) {
	root := newFakeRoot()
	root.fail["close:instance"] = errBoom
	b := flat.New(root)
	driveTo(t, b, flat.ModeInstance)

	err := b.ExperimentBegin(false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not close the instance")
	assert.Equal(t, flat.ModeRoot, b.Mode())
	assert.Zero(t, root.count("create:experiment#1"))
}

func TestBuilder_CreateFailure(t *testing.T) {
	root := newFakeRoot()
	root.fail["create:run"] = errBoom
	b := flat.New(root)
	driveTo(t, b, flat.ModeRunSet)

	err := b.RunAddDataPoint(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, flat.ErrCollaboratorFailure)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, flat.ModeRunSet, b.Mode())
}

func TestBuilder_MutatorFailure(t *testing.T) {
	root := newFakeRoot()
	root.fail["point:run"] = errBoom
	b := flat.New(root)
	driveTo(t, b, flat.ModeRunSet)
	require.NoError(t, b.RunsSetInstance("i1"))

	err := b.RunAddDataPointText("1 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `could not add data point "1 2"`)
	assert.Contains(t, err.Error(), `a run in the run set for instance "i1"`)
	assert.Contains(t, err.Error(), ": boom")
	assert.Equal(t, flat.ModeRun, b.Mode(), "the run stays open")
}

func TestBuilder_ExperimentSetFlushFailure(t *testing.T) {
	root := newFakeRoot()
	root.fail["close:run#1"] = errBoom
	b := flat.New(root)
	driveTo(t, b, flat.ModeRun)

	_, err := b.ExperimentSet()
	require.Error(t, err)
	assert.False(t, b.Consumed())
	assert.Equal(t, flat.ModeRoot, b.Mode())
	assert.Zero(t, root.count("create:root#1"))

	set, err := b.ExperimentSet()
	require.NoError(t, err)
	assert.NotNil(t, set)
	assert.True(t, b.Consumed())
}

func TestBuilder_ExperimentSetCreateFailure(t *testing.T) {
	root := newFakeRoot()
	root.fail["create:root"] = errBoom
	b := flat.New(root)

	set, err := b.ExperimentSet()
	require.Error(t, err)
	assert.Nil(t, set)
	assert.ErrorIs(t, err, flat.ErrCollaboratorFailure)
	assert.True(t, b.Consumed())
	assert.Equal(t, 1, root.count("close:root#1"), "the collaborator is released")

	_, err = b.ExperimentSet()
	assert.ErrorIs(t, err, flat.ErrConsumedBuilder)
}

func TestBuilder_CloseCollectsFailures(t *testing.T) {
	root := newFakeRoot()
	root.fail["close:experiment"] = errBoom
	errRoot := errors.New("root rejected")
	root.fail["close:root"] = errRoot
	b := flat.New(root)
	driveTo(t, b, flat.ModeExperiment)

	err := b.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, err, errRoot)
	assert.True(t, b.Consumed())
}
