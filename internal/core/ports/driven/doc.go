// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - RelevanceQuery: The only boundary the clustering core depends on
//   - Index: A temporary full-text index that is also a RelevanceQuery (SQLite FTS5)
//   - IndexFactory: Creates the temporary index for one run
//   - Connector: Lists the files of the scanned directory
//   - ConnectorFactory: Creates the connector for one directory
//   - Normaliser: Extracts text from one file format
//   - NormaliserRegistry: Selects the appropriate normaliser
//   - ConfigStore: Application configuration (TOML)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
