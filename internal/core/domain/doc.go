// Package domain defines the core entities for similar.
//
// This package is the innermost layer of the hexagon. It has NO external
// dependencies and defines the fundamental types:
//
//   - Document: An indexed file and its stable numeric identifier
//   - Match: One relevance hit returned by a relevance provider
//   - Cluster: A non-trivial group of mutually similar documents
//   - ClusterReport: The outcome of one clustering run
//   - RawDocument: Opaque bytes from a connector
//   - Settings: Typed application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
