/*
Package ports defines the driven ports (interfaces) for the automata engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to read definitions from various sources and persist evaluation reports
in various storage backends.

# Key Interfaces

  - DefinitionSource: Responsible for locating raw automaton definitions (e.g., from disk or memory).
  - ReportStore: Responsible for persisting and loading evaluation Reports.
  - Engine: The surface driving adapters (HTTP, MCP) use to parse and evaluate.
*/
package ports
