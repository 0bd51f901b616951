package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "json" | "text"
	LogFormat string // "" | "json" | "text"
	RulesFile string
	EnvFiles  []string
	Metrics   bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of the featuretoggle CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "featuretoggle",
		Short: "Resolve feature visibility from rule sets",
		Long: `featuretoggle resolves feature visibility against a YAML rule set and
inline rules taken from FEATURETOGGLE_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.LogFormat != "" && !slices.Contains(ValidFormats, opts.LogFormat) {
				return fmt.Errorf("invalid log format %q: must be one of %v", opts.LogFormat, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "trace rule resolution to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (json|text), overrides FEATURETOGGLE_LOG_FORMAT")
	cmd.PersistentFlags().BoolVar(&opts.Metrics, "metrics", false, "print decision counters to stderr after the command")
	cmd.PersistentFlags().StringVarP(&opts.RulesFile, "rules", "r", "", "YAML rule set (overrides FEATURETOGGLE_RULES_FILE)")
	cmd.PersistentFlags().StringSliceVar(&opts.EnvFiles, "env-file", nil, ".env files to load")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewRulesCommand(opts))

	return cmd
}
