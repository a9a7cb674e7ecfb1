package scope

import (
	"context"
	"testing"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
	"github.com/fyrsmithlabs/forgescope/internal/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestResolveEmptyQueryMeansUnrestricted(t *testing.T) {
	client := newFakeClient()
	r := NewResolver(client, logging.NewTestLogger().Logger)

	got, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, got)
	require.Zero(t, client.groupSearches, "empty query must not hit the remote")
	require.Zero(t, client.userSearches)
}

func TestResolveGroupMatch(t *testing.T) {
	client := newFakeClient()
	client.groups["acme"] = []forge.Namespace{{ID: 1, Path: "acme", Kind: forge.KindGroup}}
	r := NewResolver(client, logging.NewTestLogger().Logger)

	got, err := r.Resolve(context.Background(), "acme")
	require.NoError(t, err)
	require.Equal(t, []forge.Namespace{{ID: 1, Path: "acme", Kind: forge.KindGroup}}, got)
	require.Zero(t, client.userSearches, "user fallback must not run when a group matched")
}

func TestResolveFallsBackToUserSearch(t *testing.T) {
	client := newFakeClient()
	client.users["jdoe"] = []forge.Namespace{{ID: 9, Path: "jdoe", Kind: forge.KindUser}}
	r := NewResolver(client, logging.NewTestLogger().Logger)

	got, err := r.Resolve(context.Background(), "jdoe")
	require.NoError(t, err)
	require.Equal(t, 1, client.groupSearches)
	require.Equal(t, 1, client.userSearches)
	require.Len(t, got, 1)
	require.Equal(t, forge.KindUser, got[0].Kind)
}

func TestResolveNothingMatchesTriesUsersFirst(t *testing.T) {
	client := newFakeClient()
	r := NewResolver(client, logging.NewTestLogger().Logger)

	got, err := r.Resolve(context.Background(), "nonexistent-group")
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, 1, client.userSearches, "user search must be attempted before giving up")
}

func TestResolveMultipleGroupsWidensScopeWithDiagnostic(t *testing.T) {
	client := newFakeClient()
	client.groups["ac"] = []forge.Namespace{
		{ID: 1, Path: "acme", Kind: forge.KindGroup},
		{ID: 2, Path: "acorn", Kind: forge.KindGroup},
	}
	tl := logging.NewTestLogger()
	r := NewResolver(client, tl.Logger)

	got, err := r.Resolve(context.Background(), "ac")
	require.NoError(t, err)
	require.Len(t, got, 2, "all matches must be used, not an error")
	tl.AssertLogged(t, zapcore.WarnLevel, "matched multiple groups")
}
