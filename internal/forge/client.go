package forge

import (
	"context"
	"iter"
)

// CreateOptions parameterizes project creation.
type CreateOptions struct {
	Name string

	// Namespace places the project under a group namespace. Nil means
	// the authenticated user's personal namespace.
	Namespace *Namespace

	Visibility Visibility
}

// Client is the remote API capability the scope pipeline consumes.
//
// Implementations exhaust pagination before returning: every slice is
// the complete result set for the query. Transport failures surface
// wrapped in ErrRemoteUnavailable.
type Client interface {
	// SearchGroups returns group namespaces matching the query by name.
	SearchGroups(ctx context.Context, query string) ([]Namespace, error)

	// SearchUsers returns user namespaces matching the query by name.
	SearchUsers(ctx context.Context, query string) ([]Namespace, error)

	// ListNamespaceProjects lists the direct projects of one namespace.
	// Returned records may be lightweight (Canonical == false).
	ListNamespaceProjects(ctx context.Context, ns Namespace) ([]Project, error)

	// ListAllProjects lists every project visible to the authenticated
	// identity, unfiltered by namespace.
	ListAllProjects(ctx context.Context) ([]Project, error)

	// GetProject fetches the canonical project record by ID.
	GetProject(ctx context.Context, id int64) (Project, error)

	// CommitEmails yields the committer email of each commit in the
	// project's default history, newest first, fetching further pages
	// lazily so callers can stop at the first match. A non-nil second
	// value ends iteration; a project with no accessible repository
	// yields ErrNoRepository.
	CommitEmails(ctx context.Context, projectID int64) iter.Seq2[string, error]

	// CurrentUser returns the authenticated identity.
	CurrentUser(ctx context.Context) (Identity, error)

	// CurrentUserEmails returns all email addresses registered to the
	// authenticated user.
	CurrentUserEmails(ctx context.Context) ([]string, error)

	// CreateProject creates a project. Conflicts surface wrapped in
	// ErrCreateConflict.
	CreateProject(ctx context.Context, opts CreateOptions) (Project, error)
}
