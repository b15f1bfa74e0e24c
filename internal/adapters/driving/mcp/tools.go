package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/similar/internal/connectors/filesystem"
	"github.com/custodia-labs/similar/internal/core/ports/driving"
)

// FindSimilarInput is the input schema for the find_similar tool.
type FindSimilarInput struct {
	Path      string `json:"path" jsonschema:"directory whose files are compared (not recursive); a file:// URI is accepted"`
	Threshold *int   `json:"threshold,omitempty" jsonschema:"relevance cut-off between 0 and 100 (default: configured cluster.threshold)"`
}

// FindSimilarOutput is the output schema for the find_similar tool.
type FindSimilarOutput struct {
	RunID     string          `json:"run_id"`
	Threshold int             `json:"threshold"`
	Documents int             `json:"documents"`
	Edges     int             `json:"edges"`
	Failures  []string        `json:"failures,omitempty"`
	Clusters  []ClusterOutput `json:"clusters"`
}

// ClusterOutput is one group of mutually similar files.
type ClusterOutput struct {
	Component int      `json:"component"`
	Files     []string `json:"files"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "find_similar",
		Description: "Index the files of a directory and return the clusters of files " +
			"that are similar to each other at or above the threshold",
	}, s.handleFindSimilar)
}

// handleFindSimilar handles the find_similar tool invocation.
func (s *Server) handleFindSimilar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindSimilarInput,
) (*mcp.CallToolResult, FindSimilarOutput, error) {
	if input.Path == "" {
		return nil, FindSimilarOutput{}, fmt.Errorf("path is required")
	}

	threshold, err := s.threshold(input.Threshold)
	if err != nil {
		return nil, FindSimilarOutput{}, err
	}

	report, err := s.ports.Finder.Find(ctx, driving.FindRequest{
		Dir:       filesystem.ResolvePath(input.Path),
		Threshold: threshold,
	})
	if err != nil {
		return nil, FindSimilarOutput{}, err
	}

	output := FindSimilarOutput{
		RunID:     report.RunID,
		Threshold: report.Threshold,
		Documents: report.Documents,
		Edges:     report.Edges,
		Clusters:  make([]ClusterOutput, len(report.Clusters)),
	}
	for _, f := range report.Failures {
		output.Failures = append(output.Failures, f.Error())
	}
	for i, c := range report.Clusters {
		output.Clusters[i] = ClusterOutput{
			Component: c.Component,
			Files:     c.Labels(),
		}
	}

	return nil, output, nil
}

func (s *Server) threshold(given *int) (int, error) {
	if given != nil {
		return *given, nil
	}
	if s.ports.Settings == nil {
		return 0, ErrNoThreshold
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return 0, err
	}
	if !settings.Cluster.HasThreshold {
		return 0, ErrNoThreshold
	}
	return settings.Cluster.Threshold, nil
}
