/*
Package observability turns flat builder hooks into Prometheus metrics and structured logs.

Metrics.Hooks and LogHooks return domain.BuilderHooks; Combine fans one event out to several hook sets.
*/
package observability
