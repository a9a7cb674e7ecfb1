package main

import (
	"bytes"
	"slices"
	"testing"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
	"github.com/fyrsmithlabs/forgescope/internal/scope"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newFilterFlagCmd(args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("mine", false, "")
	cmd.Flags().Bool("contributed", false, "")
	if err := cmd.Flags().Parse(args); err != nil {
		panic(err)
	}
	return cmd
}

func TestFilterMode(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    scope.FilterMode
		wantErr bool
	}{
		{name: "none", want: scope.FilterNone},
		{name: "mine", args: []string{"--mine"}, want: scope.FilterMine},
		{name: "contributed", args: []string{"--contributed"}, want: scope.FilterContributed},
		{name: "both is an error", args: []string{"--mine", "--contributed"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filterMode(newFilterFlagCmd(tt.args...))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestWriteLines(t *testing.T) {
	projects := []forge.Project{
		{ID: 1, Path: "b", FullPath: "g/b", SSHURL: "git@h:g/b.git"},
		{ID: 2, Path: "a", FullPath: "g/a", SSHURL: "git@h:g/a.git"},
	}
	var buf bytes.Buffer

	err := writeLines(&buf, scope.Render(projects, scope.RenderOptions{Mode: scope.ModeCheckoutConfig}))
	require.NoError(t, err)
	require.Equal(t,
		"[a]\ncheckout = git clone 'git@h:g/a.git'\n\n[b]\ncheckout = git clone 'git@h:g/b.git'\n",
		buf.String())
}

func TestSubcommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"list", "mrconfig", "create", "sync"} {
		require.True(t, slices.Contains(names, want), "missing subcommand %s", want)
	}
}
