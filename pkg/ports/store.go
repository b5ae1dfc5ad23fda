package ports

import (
	"context"

	"github.com/aretw0/flatexp/pkg/domain"
)

// SnapshotStore defines the interface for persisting finalized experiment sets.
type SnapshotStore interface {
	// Save persists the experiment set under the given ID, replacing any previous value.
	Save(ctx context.Context, id string, set *domain.ExperimentSet) error

	// Load retrieves the experiment set stored under id.
	// Returns domain.ErrSnapshotNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.ExperimentSet, error)

	// Delete removes the experiment set. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored experiment sets.
	List(ctx context.Context) ([]string, error)
}
