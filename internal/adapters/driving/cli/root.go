// Package cli implements the similar command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/similar/internal/adapters/driven/config/file"
	"github.com/custodia-labs/similar/internal/adapters/driven/index/sqlite"
	"github.com/custodia-labs/similar/internal/connectors/filesystem"
	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driving"
	"github.com/custodia-labs/similar/internal/core/services"
	"github.com/custodia-labs/similar/internal/logger"
	htmlnorm "github.com/custodia-labs/similar/internal/normalisers/html"
	"github.com/custodia-labs/similar/internal/normalisers/markdown"
	"github.com/custodia-labs/similar/internal/normalisers/plaintext"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Flags.
var (
	jsonOutput  bool
	workers     int
	expandTerms int
	watchMode   bool
	verbose     bool
	configDir   string
	noColor     bool
)

// Loaded by PersistentPreRunE for every command.
var (
	settingsService driving.SettingsService
	settings        domain.Settings
	configPath      string
)

// newFinder builds the pipeline for the loaded settings.
var newFinder = defaultFinder

var rootCmd = &cobra.Command{
	Use:   "similar [path] [threshold]",
	Short: "Find clusters of similar files in a directory",
	Long: `Indexes every file directly inside path, asks the index which files are
relevant to each file, and prints the groups of files that are all
relevant to each other at or above threshold (0-100).

A file A is linked to B when B scores at least threshold as a match for A.
A cluster is a set of files in which every file reaches every other
through such links. Files that are only similar one way are not grouped.

The threshold may be omitted when cluster.threshold is configured.`,
	Example: `  similar ~/notes 60
  similar --json ~/notes 40
  similar --watch ~/drafts`,
	Args:              cobra.RangeArgs(1, 2),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE:              runFind,
}

func init() {
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "output the report as JSON")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent relevance queries (default: query.workers)")
	rootCmd.Flags().IntVar(&expandTerms, "expand-terms", 0,
		"terms drawn from each file to query for similar files (default: index.expand_terms)")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "re-run whenever a file in path changes")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.similar)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	configPath = store.Path()
	settingsService = services.NewSettingsService(store)

	// The config commands must run on an invalid file so it can be repaired.
	repairable := isConfigCommand(cmd)

	s, err := settingsService.Get()
	if err != nil && !repairable {
		return err
	}
	if workers != 0 {
		s.Query.Workers = workers
	}
	if expandTerms != 0 {
		s.Index.ExpandTerms = expandTerms
	}
	if noColor {
		s.Output.Color = false
	}
	if err := s.Validate(); err != nil {
		if !repairable {
			return err
		}
		logger.Warn("%v", err)
	}

	settings = s
	logger.Debug("Config: %s", configPath)
	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

func defaultFinder(s domain.Settings) driving.Finder {
	registry := services.NewNormaliserRegistry(
		plaintext.New(),
		markdown.New(),
		htmlnorm.New(),
	)
	return services.NewFinder(
		filesystem.Factory(filesystem.WithIgnore(s.Index.DirName)),
		sqlite.Factory(sqlite.WithExpandTerms(s.Index.ExpandTerms)),
		services.NewIndexService(registry),
		services.NewClusterService(s.Query.Workers),
		s.Index.DirName,
	)
}

// resolveThreshold reads the threshold argument, falling back to the
// configured one.
func resolveThreshold(args []string) (int, error) {
	if len(args) < 2 {
		if !settings.Cluster.HasThreshold {
			return 0, fmt.Errorf("missing threshold: pass it after the path or run 'similar config set %s <n>'",
				services.KeyThreshold)
		}
		return settings.Cluster.Threshold, nil
	}

	threshold, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidThreshold, args[1])
	}
	if err := domain.ValidateThreshold(threshold); err != nil {
		return 0, err
	}
	return threshold, nil
}

func runFind(cmd *cobra.Command, args []string) error {
	threshold, err := resolveThreshold(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	r := newRenderer(cmd, settings.Output.Color, jsonOutput)
	finder := newFinder(settings)
	req := driving.FindRequest{
		Dir:       filesystem.ResolvePath(args[0]),
		Threshold: threshold,
		Progress:  r.progress,
	}

	report, err := finder.Find(ctx, req)
	if err != nil {
		return err
	}
	if err := r.report(report); err != nil {
		return err
	}

	if !watchMode {
		return nil
	}
	return watch(ctx, finder, r, req)
}
