/*
Package hierarchy implements the hierarchical experiment-set construction API in memory.

A Builder hands out one context per level: dimensions, instances and experiments at the
root, run sets inside an experiment and runs inside a run set. Each context is configured
through its setters and committed into the accumulated graph when it is closed; a context
whose Close fails is discarded. Create finalizes the graph into a domain.ExperimentSet.

Sets are frozen in construction order. Creating the first instance (or requesting the
dimension set) freezes the dimensions; creating the first experiment (or requesting the
instance or feature set) freezes instances and features.

Builders and their contexts are not safe for concurrent use.
*/
package hierarchy
