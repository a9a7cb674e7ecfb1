package scope

import (
	"context"
	"testing"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
	"github.com/fyrsmithlabs/forgescope/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestCollectEmptyNamespaceSetListsEverything(t *testing.T) {
	client := newFakeClient()
	client.all = []forge.Project{
		{ID: 1, Path: "app", FullPath: "acme/app"},
		{ID: 2, Path: "lib", FullPath: "acme/lib"},
	}
	c := NewCollector(client, logging.NewTestLogger().Logger)

	got, err := c.Collect(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestCollectDeduplicatesAcrossNamespaces(t *testing.T) {
	// Project 42 is reachable through both the group and the user
	// namespace; it must appear exactly once.
	shared := forge.Project{ID: 42, Path: "tool", FullPath: "acme/tool"}
	client := newFakeClient()
	client.nsProjects[1] = []forge.Project{shared, {ID: 7, Path: "app", FullPath: "acme/app"}}
	client.nsProjects[2] = []forge.Project{shared, {ID: 8, Path: "dots", FullPath: "jdoe/dots"}}
	c := NewCollector(client, logging.NewTestLogger().Logger)

	got, err := c.Collect(context.Background(), []forge.Namespace{
		{ID: 1, Path: "acme", Kind: forge.KindGroup},
		{ID: 2, Path: "jdoe", Kind: forge.KindUser},
	})
	require.NoError(t, err)

	require.Len(t, got, 3)
	count := 0
	for _, p := range got {
		if p.ID == 42 {
			count++
		}
	}
	require.Equal(t, 1, count, "project 42 must occur exactly once")
}

func TestCollectOrderIsDeterministicForIdenticalInput(t *testing.T) {
	client := newFakeClient()
	client.nsProjects[1] = []forge.Project{
		{ID: 3, Path: "c", FullPath: "g/c"},
		{ID: 1, Path: "a", FullPath: "g/a"},
		{ID: 2, Path: "b", FullPath: "g/b"},
	}
	c := NewCollector(client, logging.NewTestLogger().Logger)
	ns := []forge.Namespace{{ID: 1, Path: "g", Kind: forge.KindGroup}}

	first, err := c.Collect(context.Background(), ns)
	require.NoError(t, err)
	second, err := c.Collect(context.Background(), ns)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
