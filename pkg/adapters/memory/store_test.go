package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flatexp/pkg/adapters/memory"
	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSnapshotStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	set := &domain.ExperimentSet{Experiments: []domain.Experiment{{Name: "e1"}}}

	require.NoError(t, store.Save(ctx, "s1", set))
	set.Experiments[0].Name = "mutated"

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "e1", loaded.Experiments[0].Name)

	loaded.Experiments[0].Name = "mutated again"
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "e1", again.Experiments[0].Name)
}

func TestMemoryStore_EmptyID(t *testing.T) {
	err := memory.NewStore().Save(context.Background(), "", &domain.ExperimentSet{})
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshotID)
}
