package mcp

import (
	"github.com/custodia-labs/similar/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Finder indexes a directory and clusters its files.
	Finder driving.Finder

	// Settings supplies the configured default threshold. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Finder == nil {
		return ErrMissingFinder
	}
	return nil
}
