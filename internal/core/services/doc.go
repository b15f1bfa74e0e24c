// Package services implements the driving port interfaces.
// Services contain the application logic and orchestrate
// calls to driven ports (adapters).
//
// Finder is the use case behind both the CLI and the MCP server: it
// creates a connector and a temporary index, runs IndexService over the
// directory and hands the index to ClusterService as its relevance
// provider.
package services
