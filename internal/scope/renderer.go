package scope

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
)

// Mode selects the output shape of Render.
type Mode int

const (
	// ModeListing emits one project path per line.
	ModeListing Mode = iota
	// ModeCheckoutConfig emits myrepos-style checkout stanzas.
	ModeCheckoutConfig
)

// RenderOptions parameterizes Render.
type RenderOptions struct {
	Mode Mode

	// RootPath designates a project, by bare path, to be promoted as
	// the checkout root. Empty means no root.
	RootPath string

	// Bare suppresses the namespace in listing output, printing the
	// short project name instead of the namespace-qualified path.
	Bare bool
}

// Render orders the project set and emits output lines as a lazy,
// restartable sequence. Iterating twice over the same input yields
// identical lines; the input slice is never mutated.
//
// The root project, when designated and present, is excluded from the
// general ordering and emitted first under the synthetic "." label.
// All other projects sort ascending by case-insensitive full path,
// ties keeping input order.
func Render(projects []forge.Project, opts RenderOptions) iter.Seq[string] {
	return func(yield func(string) bool) {
		root, rest := splitRoot(projects, opts.RootPath)
		ordered := sortByFullPath(rest)

		switch opts.Mode {
		case ModeCheckoutConfig:
			first := true
			if root != nil {
				if !yieldStanza(yield, ".", root.SSHURL, first) {
					return
				}
				first = false
			}
			for _, p := range ordered {
				if !yieldStanza(yield, p.Path, p.SSHURL, first) {
					return
				}
				first = false
			}
		default:
			if root != nil {
				if !yield(listingLine(*root, opts.Bare)) {
					return
				}
			}
			for _, p := range ordered {
				if !yield(listingLine(p, opts.Bare)) {
					return
				}
			}
		}
	}
}

// splitRoot extracts the project whose bare path matches rootPath.
func splitRoot(projects []forge.Project, rootPath string) (*forge.Project, []forge.Project) {
	if rootPath == "" {
		return nil, projects
	}
	for i, p := range projects {
		if p.Path == rootPath {
			root := p
			rest := make([]forge.Project, 0, len(projects)-1)
			rest = append(rest, projects[:i]...)
			rest = append(rest, projects[i+1:]...)
			return &root, rest
		}
	}
	return nil, projects
}

// sortByFullPath returns a copy sorted case-insensitively by full
// path. The sort is stable so equal keys keep input order.
func sortByFullPath(projects []forge.Project) []forge.Project {
	out := slices.Clone(projects)
	slices.SortStableFunc(out, func(a, b forge.Project) int {
		return strings.Compare(strings.ToLower(a.FullPath), strings.ToLower(b.FullPath))
	})
	return out
}

func listingLine(p forge.Project, bare bool) string {
	if bare {
		return p.Path
	}
	return p.FullPath
}

// yieldStanza emits one checkout stanza, preceded by a blank
// separator line for every stanza after the first.
func yieldStanza(yield func(string) bool, label, sshURL string, first bool) bool {
	if !first && !yield("") {
		return false
	}
	if !yield(fmt.Sprintf("[%s]", label)) {
		return false
	}
	return yield(fmt.Sprintf("checkout = git clone '%s'", sshURL))
}
