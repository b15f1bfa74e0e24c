package mcp

import (
	"context"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driving"
)

// mockFinder is a mock implementation of driving.Finder.
type mockFinder struct {
	report *domain.ClusterReport
	err    error
	calls  []driving.FindRequest
}

func (m *mockFinder) Find(_ context.Context, req driving.FindRequest) (*domain.ClusterReport, error) {
	m.calls = append(m.calls, req)
	return m.report, m.err
}

// mockSettings is a mock implementation of driving.SettingsService.
type mockSettings struct {
	settings domain.Settings
	err      error
}

func (m *mockSettings) Get() (domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettings) Set(_, _ string) error {
	return m.err
}

func (m *mockSettings) Keys() []string {
	return nil
}

func withThreshold(threshold int) *mockSettings {
	s := domain.DefaultSettings()
	s.Cluster.Threshold = threshold
	s.Cluster.HasThreshold = true
	return &mockSettings{settings: s}
}

func intPtr(n int) *int {
	return &n
}
