package main

import (
	"bufio"
	"fmt"
	"io"
	"iter"

	"github.com/fyrsmithlabs/forgescope/internal/scope"
	"github.com/spf13/cobra"
)

// listCmd prints the resolved scope, one project path per line.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the projects of a scope",
	Long: `List the projects matching the group selector and identity filter,
one namespace-qualified path per line, sorted case-insensitively.

Examples:
  # Every project visible to you
  forgescope list

  # Projects of a group, or of a user when no group matches
  forgescope list --group acme

  # Projects you created
  forgescope list --mine

  # Projects you have committed to
  forgescope list --group acme --contributed`,
	RunE: runList,
}

// mrconfigCmd prints the checkout configuration for the scope.
var mrconfigCmd = &cobra.Command{
	Use:   "mrconfig",
	Short: "Render a checkout configuration for a scope",
	Long: `Render the scope as a myrepos-style checkout configuration: one stanza
per project keyed by its bare path, cloning via SSH. The project named
by --root is promoted to the synthetic "." stanza and emitted first.

Examples:
  # Checkout config for a group, with "platform" as the root project
  forgescope mrconfig --group acme --root platform > .mrconfig`,
	RunE: runMrconfig,
}

func init() {
	for _, cmd := range []*cobra.Command{listCmd, mrconfigCmd} {
		cmd.Flags().Bool("mine", false, "keep only projects you created")
		cmd.Flags().Bool("contributed", false, "keep only projects you committed to")
		cmd.Flags().Int("workers", 0, "parallel commit scans for --contributed")
	}
	listCmd.Flags().Bool("bare", false, "print bare project names without the namespace")
	mrconfigCmd.Flags().String("root", "", "bare path of the project promoted to the checkout root")
}

func runList(cmd *cobra.Command, args []string) error {
	lines, err := buildAndRender(cmd, scope.ModeListing)
	if err != nil {
		return err
	}
	return writeLines(cmd.OutOrStdout(), lines)
}

func runMrconfig(cmd *cobra.Command, args []string) error {
	lines, err := buildAndRender(cmd, scope.ModeCheckoutConfig)
	if err != nil {
		return err
	}
	return writeLines(cmd.OutOrStdout(), lines)
}

func buildAndRender(cmd *cobra.Command, mode scope.Mode) (iter.Seq[string], error) {
	ctx, a, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	defer a.logger.Sync() //nolint:errcheck

	filter, err := filterMode(cmd)
	if err != nil {
		return nil, err
	}

	projects, err := scope.Build(ctx, a.client, a.logger, scope.Options{
		Group:   a.cfg.Scope.Group,
		Filter:  filter,
		Workers: a.cfg.Scope.Workers,
	})
	if err != nil {
		return nil, err
	}

	return scope.Render(projects, scope.RenderOptions{
		Mode:     mode,
		RootPath: a.cfg.Scope.Root,
		Bare:     a.cfg.Scope.Bare,
	}), nil
}

// filterMode derives the identity filter from --mine/--contributed.
func filterMode(cmd *cobra.Command) (scope.FilterMode, error) {
	mine, _ := cmd.Flags().GetBool("mine")
	contributed, _ := cmd.Flags().GetBool("contributed")
	switch {
	case mine && contributed:
		return scope.FilterNone, fmt.Errorf("--mine and --contributed are mutually exclusive")
	case mine:
		return scope.FilterMine, nil
	case contributed:
		return scope.FilterContributed, nil
	default:
		return scope.FilterNone, nil
	}
}

func writeLines(out io.Writer, lines iter.Seq[string]) error {
	w := bufio.NewWriter(out)
	for line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}
