/*
Package observability provides tools for monitoring the automata engine.

It turns the engine's lifecycle hooks into Prometheus metrics (definitions loaded,
verdicts produced, per-word evaluation latency) and structured log records.
*/
package observability
