/*
Package domain contains the experiment-data model produced by flatexp builders.

It defines the immutable snapshot entities (ExperimentSet and its dimensions, instances,
features, parameters, experiments, run sets and runs), the enumerations used to describe
measurement dimensions, and the lifecycle hook types used for observability. The package
has no I/O and no dependency on the builders that produce it.

# Key Entities

  - Dimension: a measured axis of every data point (e.g. elapsed time, objective value).
  - Instance: a benchmark problem instance, with feature values and per-dimension bounds.
  - Experiment: an algorithm setup with parameter values and one run set per instance.
  - InstanceRuns: the runs of one experiment on one instance.
  - Run: an ordered list of data points, one value per dimension.
  - ExperimentSet: the finalized graph holding all of the above.
*/
package domain
