package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/featuretoggle/pkg/feature"
)

// RulesOptions holds flags for the rules command.
type RulesOptions struct {
	*RootOptions
	KeysOnly bool
}

// ruleEntry is the JSON shape of a listed rule.
type ruleEntry struct {
	Feature string `json:"feature"`
	Variant string `json:"variant,omitempty"`
	Visible any    `json:"visible"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RulesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the loaded rules",
		Long: `List the loaded rules in registration order, as a visibilityrule
listener sees them when it subscribes. With --keys only the store keys are
listed and no rule is evaluated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.KeysOnly, "keys", false, "list store keys without evaluating rules")

	return cmd
}

func runRules(opts *RulesOptions, cmd *cobra.Command) error {
	s, err := buildEngine(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.finish(opts.RootOptions, cmd)

	if opts.KeysOnly {
		return writeKeys(opts.RootOptions, cmd, s.engine.Keys())
	}

	var entries []ruleEntry
	err = s.engine.On(feature.EventVisibilityRule, func(visible any, name, variant string, _ feature.Rule) {
		entries = append(entries, ruleEntry{Feature: name, Variant: variant, Visible: visible})
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		if entries == nil {
			entries = []ruleEntry{}
		}
		return writeJSON(out, entries)
	}

	for _, e := range entries {
		if _, err := fmt.Fprintf(out, "%s\t%v\n", feature.EncodeKey(e.Feature, e.Variant), e.Visible); err != nil {
			return err
		}
	}
	return nil
}

func writeKeys(opts *RootOptions, cmd *cobra.Command, keys []feature.Key) error {
	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		return writeJSON(out, keys)
	}
	for _, k := range keys {
		if _, err := fmt.Fprintln(out, k); err != nil {
			return err
		}
	}
	return nil
}
