// Package checkout materializes a resolved scope on disk: every
// project of the scope is cloned under a target directory, laid out
// the same way the rendered checkout configuration would check it
// out. Existing working copies are left alone.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
	"github.com/fyrsmithlabs/forgescope/internal/logging"
	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultCloneWorkers = 4

// Result reports the outcome of one project sync.
type Result struct {
	Project forge.Project
	// Path is the working copy location.
	Path string
	// Cloned is true when a fresh clone was made, false when an
	// existing working copy was kept.
	Cloned bool
	// Err is the per-project failure, nil on success. Failures never
	// abort the other clones.
	Err error
}

// Syncer clones the projects of a scope.
type Syncer struct {
	logger  *logging.Logger
	workers int
}

// NewSyncer creates a syncer. workers bounds parallel clones; values
// below 1 fall back to the default.
func NewSyncer(logger *logging.Logger, workers int) *Syncer {
	if workers < 1 {
		workers = defaultCloneWorkers
	}
	return &Syncer{logger: logger.Named("checkout"), workers: workers}
}

// Sync clones every project under dir: the project designated by
// rootPath (bare path match) into dir itself, all others into
// dir/<bare path>. Results come back in input order.
func (s *Syncer) Sync(ctx context.Context, projects []forge.Project, rootPath, dir string) []Result {
	results := make([]Result, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, p := range projects {
		g.Go(func() error {
			target := filepath.Join(dir, p.Path)
			if rootPath != "" && p.Path == rootPath {
				target = dir
			}
			results[i] = s.syncOne(gctx, p, target)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *Syncer) syncOne(ctx context.Context, p forge.Project, target string) Result {
	res := Result{Project: p, Path: target}

	if _, err := git.PlainOpen(target); err == nil {
		s.logger.Debug(ctx, "working copy already present, skipping",
			zap.String("project", p.FullPath),
			zap.String("path", target))
		return res
	} else if !errors.Is(err, git.ErrRepositoryNotExists) {
		res.Err = fmt.Errorf("inspecting %s: %w", target, err)
		return res
	}

	s.logger.Info(ctx, "cloning project",
		zap.String("project", p.FullPath),
		zap.String("path", target))
	if _, err := git.PlainCloneContext(ctx, target, false, &git.CloneOptions{URL: p.SSHURL}); err != nil {
		res.Err = fmt.Errorf("cloning %s: %w", p.FullPath, err)
		return res
	}
	res.Cloned = true
	return res
}
