package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore implementation
// adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	id := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		set := contractSnapshot()

		err := store.Save(ctx, id, set)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, loaded.Dimensions, 1)
		assert.Equal(t, "time", loaded.Dimensions[0].Name)
		assert.Equal(t, domain.DimensionTypeTime, loaded.Dimensions[0].Type)
		require.Len(t, loaded.Experiments, 1)
		assert.Equal(t, "e1", loaded.Experiments[0].Name)
		assert.Equal(t, 1, loaded.RunCount())
		assert.Equal(t, 2, loaded.DataPointCount())
		// Setting values go through serialization, so only check presence.
		v, ok := loaded.Experiments[0].Parameters.Get("population")
		assert.True(t, ok)
		assert.NotNil(t, v)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		set := contractSnapshot()
		set.Experiments[0].Name = "e2"
		require.NoError(t, store.Save(ctx, id, set))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "e2", loaded.Experiments[0].Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, contractSnapshot()))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")

		assert.NoError(t, store.Delete(ctx, id), "Deleting a missing snapshot should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.Save(ctx, id1, contractSnapshot())
		_ = store.Save(ctx, id2, contractSnapshot())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

func contractSnapshot() *domain.ExperimentSet {
	return &domain.ExperimentSet{
		Dimensions: domain.DimensionSet{
			{Name: "time", Direction: domain.DirectionIncreasing, Type: domain.DimensionTypeTime, Parser: "double"},
		},
		Instances: domain.InstanceSet{{Name: "i1"}},
		Parameters: domain.ParameterSet{
			{Name: "population", Values: []any{10}},
		},
		Experiments: []domain.Experiment{{
			Name:       "e1",
			Parameters: domain.Settings{{Name: "population", Value: 10}},
			Runs: []domain.InstanceRuns{{
				Instance: "i1",
				Runs: []domain.Run{{
					DataPoints: []domain.DataPoint{{1}, {2}},
				}},
			}},
		}},
	}
}
