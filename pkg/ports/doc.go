/*
Package ports defines the driven ports (interfaces) of flatexp.

These interfaces decouple the flat builder from the hierarchical object model it drives and
from the storage backends that keep finalized snapshots.

# Key Interfaces

  - ExperimentSetBuilder: the root of the hierarchical construction API. It hands out one
    child context per level (dimension, instance, experiment) and finalizes the graph.
  - DimensionContext, InstanceContext, ExperimentContext, InstanceRunsContext, RunContext:
    the per-level contexts. Every method may fail, Close included.
  - NumberParser: the boundary of the numeric parsing subsystem used by dimensions.
  - SnapshotStore: persists finalized experiment sets (memory, file, redis).
  - Locker: optional cross-process locking of snapshot IDs (redis).
*/
package ports
