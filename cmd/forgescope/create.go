package main

import (
	"fmt"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
	"github.com/fyrsmithlabs/forgescope/internal/scope"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// createCmd creates one or more projects.
var createCmd = &cobra.Command{
	Use:   "create <name>...",
	Short: "Create projects on the forge",
	Long: `Create one or more projects, under the group selected by --group or
under your personal namespace when no group is given. Each create is
independent: a name conflict fails that project only, the rest
proceed.

Examples:
  # Private project under your personal namespace
  forgescope create sandbox

  # Public projects under a group
  forgescope create --group acme --public tool-a tool-b`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().Bool("public", false, "create publicly visible projects")
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx, a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync() //nolint:errcheck

	var ns *forge.Namespace
	if a.cfg.Scope.Group != "" {
		namespaces, err := scope.NewResolver(a.client, a.logger).Resolve(ctx, a.cfg.Scope.Group)
		if err != nil {
			return err
		}
		if len(namespaces) == 0 {
			return fmt.Errorf("%w: %q", scope.ErrNoNamespace, a.cfg.Scope.Group)
		}
		if len(namespaces) > 1 {
			return fmt.Errorf("group %q is ambiguous, refusing to create", a.cfg.Scope.Group)
		}
		ns = &namespaces[0]
	}

	visibility := forge.VisibilityPrivate
	if public, _ := cmd.Flags().GetBool("public"); public {
		visibility = forge.VisibilityPublic
	}

	failed := 0
	for _, name := range args {
		p, err := a.client.CreateProject(ctx, forge.CreateOptions{
			Name:       name,
			Namespace:  ns,
			Visibility: visibility,
		})
		if err != nil {
			failed++
			a.logger.Error(ctx, "create failed",
				zap.String("name", name),
				zap.Error(err))
			continue
		}
		a.logger.Info(ctx, "created project",
			zap.String("project", p.FullPath),
			zap.String("ssh_url", p.SSHURL))
	}
	if failed == len(args) {
		return fmt.Errorf("all %d creates failed", failed)
	}
	if failed > 0 {
		a.logger.Warn(ctx, "some creates failed",
			zap.Int("failed", failed),
			zap.Int("total", len(args)))
	}
	return nil
}
