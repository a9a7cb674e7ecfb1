package scope

import (
	"context"
	"fmt"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
	"github.com/fyrsmithlabs/forgescope/internal/logging"
	"go.uber.org/zap"
)

// Collector gathers the candidate project set for a namespace set.
type Collector struct {
	client forge.Client
	logger *logging.Logger
}

// NewCollector creates a collector.
func NewCollector(client forge.Client, logger *logging.Logger) *Collector {
	return &Collector{client: client, logger: logger.Named("collector")}
}

// Collect lists the projects of every namespace and unions the
// results, deduplicated by project ID. A project reachable through
// several namespaces (overlapping group and user matches) appears
// once, attributed to the namespace it was first seen under.
//
// An empty namespace set lists every project visible to the
// authenticated identity.
func (c *Collector) Collect(ctx context.Context, namespaces []forge.Namespace) ([]forge.Project, error) {
	if len(namespaces) == 0 {
		projects, err := c.client.ListAllProjects(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing all visible projects: %w", err)
		}
		c.logger.Debug(ctx, "collected global project set", zap.Int("projects", len(projects)))
		return dedupByID(projects), nil
	}

	var union []forge.Project
	for _, ns := range namespaces {
		projects, err := c.client.ListNamespaceProjects(ctx, ns)
		if err != nil {
			return nil, fmt.Errorf("listing projects of %s %q: %w", ns.Kind, ns.Path, err)
		}
		c.logger.Debug(ctx, "collected namespace projects",
			zap.String("namespace", ns.Path),
			zap.Stringer("kind", ns.Kind),
			zap.Int("projects", len(projects)))
		union = append(union, projects...)
	}
	return dedupByID(union), nil
}

// dedupByID keeps the first occurrence of each project ID, preserving
// input order so collection is deterministic for identical input.
func dedupByID(projects []forge.Project) []forge.Project {
	seen := make(map[int64]struct{}, len(projects))
	out := make([]forge.Project, 0, len(projects))
	for _, p := range projects {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
