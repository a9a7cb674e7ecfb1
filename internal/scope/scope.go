package scope

import (
	"context"
	"errors"
	"fmt"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
	"github.com/fyrsmithlabs/forgescope/internal/logging"
	"go.uber.org/zap"
)

// ErrNoNamespace is returned by Build when a non-empty group query
// matches neither a group nor a user. The caller has no usable result
// set and should exit non-zero.
var ErrNoNamespace = errors.New("no namespace matched query")

// FilterMode selects the identity filter applied after collection.
type FilterMode int

const (
	// FilterNone keeps the collected set as-is.
	FilterNone FilterMode = iota
	// FilterMine keeps projects created by the authenticated user.
	FilterMine
	// FilterContributed keeps projects with at least one commit by any
	// of the authenticated user's registered email addresses.
	FilterContributed
)

// Options parameterizes Build.
type Options struct {
	// Group is the free-text namespace selector. Empty means every
	// project visible to the authenticated identity.
	Group string

	// Filter selects the identity filter mode.
	Filter FilterMode

	// Workers bounds parallel commit scans for FilterContributed.
	// Values below 1 use the package default.
	Workers int
}

// Build runs Resolve -> Collect -> Filter and returns the final
// deduplicated project set. Rendering is left to the caller.
func Build(ctx context.Context, client forge.Client, logger *logging.Logger, opts Options) ([]forge.Project, error) {
	namespaces, err := NewResolver(client, logger).Resolve(ctx, opts.Group)
	if err != nil {
		return nil, err
	}
	if opts.Group != "" && len(namespaces) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoNamespace, opts.Group)
	}

	projects, err := NewCollector(client, logger).Collect(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "collected scope", zap.Int("projects", len(projects)))

	switch opts.Filter {
	case FilterMine:
		me, err := client.CurrentUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching authenticated user: %w", err)
		}
		projects = NewFilter(client, logger, opts.Workers).ByCreator(projects, me)
	case FilterContributed:
		addrs, err := client.CurrentUserEmails(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching authenticated user emails: %w", err)
		}
		emails := make(map[string]struct{}, len(addrs))
		for _, a := range addrs {
			emails[a] = struct{}{}
		}
		projects, err = NewFilter(client, logger, opts.Workers).ByCommitters(ctx, projects, emails)
		if err != nil {
			return nil, err
		}
	}
	return projects, nil
}
