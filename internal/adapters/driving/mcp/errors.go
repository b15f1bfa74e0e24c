// Package mcp provides an MCP (Model Context Protocol) server adapter for similar.
// It lets AI assistants ask for the clusters of similar files in a directory.
package mcp

import "errors"

// ErrMissingFinder is returned when the finder is not provided.
var ErrMissingFinder = errors.New("mcp: finder is required")

// ErrNoThreshold is returned when a call omits the threshold and none is configured.
var ErrNoThreshold = errors.New("mcp: threshold not given and cluster.threshold not configured")
