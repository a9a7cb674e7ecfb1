package scope

import (
	"context"
	"errors"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
	"github.com/fyrsmithlabs/forgescope/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// defaultScanWorkers bounds parallel per-project commit scans.
const defaultScanWorkers = 4

// Filter narrows a project set to those authored or committed-to by a
// target identity.
type Filter struct {
	client  forge.Client
	logger  *logging.Logger
	workers int
}

// NewFilter creates a filter. workers bounds the parallel commit
// scans of ByCommitters; values below 1 fall back to the default.
func NewFilter(client forge.Client, logger *logging.Logger, workers int) *Filter {
	if workers < 1 {
		workers = defaultScanWorkers
	}
	return &Filter{client: client, logger: logger.Named("filter"), workers: workers}
}

// ByCreator keeps projects created by the given identity. Pure
// predicate over fields already present on lightweight records, no
// remote calls.
func (f *Filter) ByCreator(projects []forge.Project, creator forge.Identity) []forge.Project {
	out := make([]forge.Project, 0, len(projects))
	for _, p := range projects {
		if p.CreatorID == creator.ID {
			out = append(out, p)
		}
	}
	return out
}

// ByCommitters keeps projects whose commit history contains at least
// one commit by any of the given committer emails.
//
// This is the expensive stage: one remote scan per project. Scans are
// a pure predicate per project, so they run concurrently up to the
// worker bound; matches are recorded per input index, which makes the
// result identical for any worker count. A project whose history
// cannot be read (no repository, permission, transient failure) does
// not pass and is logged, never fatal.
func (f *Filter) ByCommitters(ctx context.Context, projects []forge.Project, emails map[string]struct{}) ([]forge.Project, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	matched := make([]bool, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, p := range projects {
		g.Go(func() error {
			ok, err := f.scan(gctx, p, emails)
			if err != nil {
				if errors.Is(err, forge.ErrNoRepository) {
					f.logger.Debug(gctx, "project has no readable history, skipping",
						zap.String("project", p.FullPath))
				} else {
					f.logger.Warn(gctx, "commit scan failed, skipping project",
						zap.String("project", p.FullPath),
						zap.Error(err))
				}
				return nil
			}
			matched[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]forge.Project, 0, len(projects))
	for i, p := range projects {
		if matched[i] {
			out = append(out, p)
		}
	}
	return out, nil
}

// scan reports whether the project history contains a commit by any
// of the emails, stopping at the first hit. Lightweight records are
// re-fetched first: listing endpoints do not expose commit history.
func (f *Filter) scan(ctx context.Context, p forge.Project, emails map[string]struct{}) (bool, error) {
	if !p.Canonical {
		full, err := f.client.GetProject(ctx, p.ID)
		if err != nil {
			return false, err
		}
		p = full
	}
	for email, err := range f.client.CommitEmails(ctx, p.ID) {
		if err != nil {
			return false, err
		}
		if _, ok := emails[email]; ok {
			return true, nil
		}
	}
	return false, nil
}
