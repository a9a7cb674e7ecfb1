package checkout

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
	"github.com/fyrsmithlabs/forgescope/internal/logging"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// initSourceRepo creates a local repository with one commit, usable
// as a clone source over the filesystem transport.
func initSourceRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("seed\n"), 0o644))
	_, err = wt.Add("README")
	require.NoError(t, err)
	_, err = wt.Commit("seed", &git.CommitOptions{
		Author: &object.Signature{Name: "seed", Email: "seed@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestSyncClonesMissingProjects(t *testing.T) {
	src := initSourceRepo(t)
	target := t.TempDir()
	s := NewSyncer(logging.NewTestLogger().Logger, 2)

	results := s.Sync(context.Background(),
		[]forge.Project{{ID: 1, Path: "app", FullPath: "g/app", SSHURL: src}},
		"", target)

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.True(t, results[0].Cloned)
	require.Equal(t, filepath.Join(target, "app"), results[0].Path)
	_, err := git.PlainOpen(results[0].Path)
	require.NoError(t, err)
}

func TestSyncSkipsExistingWorkingCopy(t *testing.T) {
	src := initSourceRepo(t)
	target := t.TempDir()
	s := NewSyncer(logging.NewTestLogger().Logger, 1)
	projects := []forge.Project{{ID: 1, Path: "app", FullPath: "g/app", SSHURL: src}}

	first := s.Sync(context.Background(), projects, "", target)
	require.True(t, first[0].Cloned)

	second := s.Sync(context.Background(), projects, "", target)
	require.NoError(t, second[0].Err)
	require.False(t, second[0].Cloned, "existing working copy must be kept")
}

func TestSyncRootProjectGoesToDirItself(t *testing.T) {
	src := initSourceRepo(t)
	target := filepath.Join(t.TempDir(), "scope")
	s := NewSyncer(logging.NewTestLogger().Logger, 1)

	results := s.Sync(context.Background(),
		[]forge.Project{{ID: 1, Path: "root", FullPath: "g/root", SSHURL: src}},
		"root", target)

	require.NoError(t, results[0].Err)
	require.Equal(t, target, results[0].Path)
}

func TestSyncReportsPerProjectFailures(t *testing.T) {
	src := initSourceRepo(t)
	target := t.TempDir()
	s := NewSyncer(logging.NewTestLogger().Logger, 2)

	results := s.Sync(context.Background(), []forge.Project{
		{ID: 1, Path: "bad", FullPath: "g/bad", SSHURL: filepath.Join(target, "no-such-source")},
		{ID: 2, Path: "good", FullPath: "g/good", SSHURL: src},
	}, "", target)

	require.Error(t, results[0].Err, "broken source must fail its own clone")
	require.NoError(t, results[1].Err, "other clones must proceed")
	require.True(t, results[1].Cloned)
}
