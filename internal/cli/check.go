package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/featuretoggle/pkg/feature"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Variant string
	Data    map[string]string
	Explain bool
}

// checkResult is the JSON shape of a check.
type checkResult struct {
	Feature string `json:"feature"`
	Variant string `json:"variant,omitempty"`
	Visible bool   `json:"visible"`
	Source  string `json:"source,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <feature>",
		Short: "Report whether a feature is visible",
		Long: `Report whether a feature is visible.

Rules receive the --data pairs as a map[string]string.

Example:
  featuretoggle check checkout --variant b --rules rules.yaml --explain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Variant, "variant", "", "feature variant")
	cmd.Flags().StringToStringVar(&opts.Data, "data", nil, "data passed to rules (key=value)")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "also report which rule decided")

	return cmd
}

func runCheck(opts *CheckOptions, name string, cmd *cobra.Command) error {
	s, err := buildEngine(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.finish(opts.RootOptions, cmd)

	d, err := s.engine.Explain(name, opts.Variant, opts.Data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		res := checkResult{Feature: name, Variant: opts.Variant, Visible: d.Visible}
		if opts.Explain {
			res.Source = string(d.Source)
		}
		return writeJSON(out, res)
	}

	label := string(feature.EncodeKey(name, opts.Variant))
	if opts.Explain {
		_, err = fmt.Fprintf(out, "%s: %s (%s)\n", label, state(d.Visible), d.Source)
	} else {
		_, err = fmt.Fprintf(out, "%s: %s\n", label, state(d.Visible))
	}
	return err
}
