package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Settings are stored in config.toml under the configuration directory
(~/.similar unless --config-dir is given). Command line flags override them.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist one setting",
	Long: `Persist one setting. Recognised keys:

  cluster.threshold    threshold used when none is given (0-100)
  index.dir_name       temporary index directory inside the scanned directory
  index.expand_terms   terms drawn from each file to find similar files
  query.workers        concurrent relevance queries
  output.color         style terminal output (true/false)`,
	Example: "  similar config set cluster.threshold 60",
	Args:    cobra.ExactArgs(2),
	RunE:    runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// settingValues renders s by config key.
func settingValues(s domain.Settings) map[string]string {
	threshold := "(unset)"
	if s.Cluster.HasThreshold {
		threshold = strconv.Itoa(s.Cluster.Threshold)
	}
	return map[string]string{
		services.KeyThreshold:   threshold,
		services.KeyIndexDir:    s.Index.DirName,
		services.KeyExpandTerms: strconv.Itoa(s.Index.ExpandTerms),
		services.KeyWorkers:     strconv.Itoa(s.Query.Workers),
		services.KeyColor:       strconv.FormatBool(s.Output.Color),
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	values := settingValues(settings)

	cmd.Printf("Config file: %s\n\n", configPath)
	for _, key := range settingsService.Keys() {
		cmd.Printf("  %-20s %s\n", key, values[key])
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return err
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
