package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/similar/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for similar resources.
	uriScheme = "similar://"

	settingsURI = uriScheme + "settings"
)

// settingsInfo is the JSON shape of the settings resource.
type settingsInfo struct {
	Threshold    *int   `json:"cluster_threshold,omitempty"`
	IndexDirName string `json:"index_dir_name"`
	ExpandTerms  int    `json:"index_expand_terms"`
	Workers      int    `json:"query_workers"`
	Version      string `json:"version"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         settingsURI,
		Name:        "settings",
		Description: "Settings used when find_similar runs",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// handleSettingsResource returns the effective settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings := domain.DefaultSettings()
	if s.ports.Settings != nil {
		var err error
		if settings, err = s.ports.Settings.Get(); err != nil {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
	}

	info := settingsInfo{
		IndexDirName: settings.Index.DirName,
		ExpandTerms:  settings.Index.ExpandTerms,
		Workers:      settings.Query.Workers,
		Version:      s.version,
	}
	if settings.Cluster.HasThreshold {
		threshold := settings.Cluster.Threshold
		info.Threshold = &threshold
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
