package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const unknownDescription = "Unknown"

// Defaults applied when a setting is absent from configuration.
const (
	// DefaultIndexDirName mirrors the temporary database name of the
	// original similar tool. It is created inside the scanned directory.
	DefaultIndexDirName = ".tmp-similar-db"

	// DefaultExpandTerms is the number of terms drawn from a document to
	// form its similarity query.
	DefaultExpandTerms = 40

	// DefaultWorkers runs relevance queries sequentially.
	DefaultWorkers = 1

	// MaxExpandTerms caps the expansion set size.
	MaxExpandTerms = 1000
)

// ClusterSettings holds clustering configuration.
type ClusterSettings struct {
	// Threshold is used when no threshold is given on the command line.
	// HasThreshold is false when none is configured.
	Threshold    int
	HasThreshold bool
}

// IndexSettings holds temporary index configuration.
type IndexSettings struct {
	// DirName is the temporary index directory, relative to the scanned directory.
	DirName string

	// ExpandTerms is the relevance-feedback expansion set size.
	ExpandTerms int
}

// QuerySettings holds relevance query configuration.
type QuerySettings struct {
	// Workers is the number of concurrent relevance queries.
	Workers int
}

// OutputSettings holds rendering configuration.
type OutputSettings struct {
	// Color enables styled terminal output.
	Color bool
}

// Settings is the typed application configuration.
type Settings struct {
	Cluster ClusterSettings
	Index   IndexSettings
	Query   QuerySettings
	Output  OutputSettings
}

// DefaultSettings returns settings with all defaults applied.
func DefaultSettings() Settings {
	return Settings{
		Index: IndexSettings{
			DirName:     DefaultIndexDirName,
			ExpandTerms: DefaultExpandTerms,
		},
		Query: QuerySettings{
			Workers: DefaultWorkers,
		},
		Output: OutputSettings{
			Color: true,
		},
	}
}

// Validate checks that every value is in range.
func (s Settings) Validate() error {
	if s.Cluster.HasThreshold {
		if err := ValidateThreshold(s.Cluster.Threshold); err != nil {
			return fmt.Errorf("%w: cluster.threshold: %w", ErrInvalidSettings, err)
		}
	}
	if !isPlainName(s.Index.DirName) {
		return fmt.Errorf("%w: index.dir_name must be a single directory name, got %q",
			ErrInvalidSettings, s.Index.DirName)
	}
	if s.Index.ExpandTerms < 1 || s.Index.ExpandTerms > MaxExpandTerms {
		return fmt.Errorf("%w: index.expand_terms must be between 1 and %d, got %d",
			ErrInvalidSettings, MaxExpandTerms, s.Index.ExpandTerms)
	}
	if s.Query.Workers < 1 {
		return fmt.Errorf("%w: query.workers must be at least 1, got %d", ErrInvalidSettings, s.Query.Workers)
	}
	return nil
}

// isPlainName reports whether name names an entry directly inside a
// directory.
func isPlainName(name string) bool {
	if name == "" || name == "." || name == ".." || filepath.IsAbs(name) {
		return false
	}
	return filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
