/*
Package flatexp builds hierarchical experiment-data sets from a flat stream of calls.

Benchmarking tools record results as a hierarchy: an experiment set holds
dimensions, instances and experiments; an experiment holds run sets, one per
instance; a run set holds runs; a run holds data points. Parsers that read log
files or CSV rows see that data flat, one value at a time. The flat builder
(package flat) accepts those flat calls, opens and closes the hierarchy levels
on demand and hands out the finished domain.ExperimentSet.

# Usage

	b := flatexp.New()

	_ = b.DimensionSetName("fes")
	_ = b.DimensionSetType(domain.DimensionTypeIterationFE)
	_ = b.InstanceSetName("tsp-100")
	_ = b.ExperimentSetName("ea")
	_ = b.RunsSetInstance("tsp-100")
	_ = b.RunAddDataPoint(1)

	set, err := b.ExperimentSet()

Each setter opens the level it needs. Opening a level closes the incompatible
ones first; RunBegin(true) and friends force a fresh context. Every error
carries a description of where the builder was when it happened.

The same calls can be written as a YAML script (package script) and run with
the flatexp command, which also publishes, reports, graphs and serves results.
*/
package flatexp
