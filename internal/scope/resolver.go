package scope

import (
	"context"
	"fmt"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
	"github.com/fyrsmithlabs/forgescope/internal/logging"
	"go.uber.org/zap"
)

// Resolver turns a free-text group query into a concrete namespace set.
type Resolver struct {
	client forge.Client
	logger *logging.Logger
}

// NewResolver creates a resolver.
func NewResolver(client forge.Client, logger *logging.Logger) *Resolver {
	return &Resolver{client: client, logger: logger.Named("resolver")}
}

// Resolve resolves groupQuery to namespaces.
//
// An empty query means "no namespace restriction" and returns nil.
// Group search runs first; when it matches nothing the same query is
// retried against users, because a user's personal projects are an
// implicit group that group search cannot see. More than one group
// match widens the scope to all of them, with a diagnostic.
func (r *Resolver) Resolve(ctx context.Context, groupQuery string) ([]forge.Namespace, error) {
	if groupQuery == "" {
		return nil, nil
	}

	groups, err := r.client.SearchGroups(ctx, groupQuery)
	if err != nil {
		return nil, fmt.Errorf("searching groups %q: %w", groupQuery, err)
	}
	if len(groups) > 1 {
		paths := make([]string, 0, len(groups))
		for _, g := range groups {
			paths = append(paths, g.Path)
		}
		r.logger.Warn(ctx, "group query matched multiple groups, using all of them",
			zap.String("query", groupQuery),
			zap.Strings("groups", paths))
	}
	if len(groups) > 0 {
		return groups, nil
	}

	users, err := r.client.SearchUsers(ctx, groupQuery)
	if err != nil {
		return nil, fmt.Errorf("searching users %q: %w", groupQuery, err)
	}
	if len(users) == 0 {
		r.logger.Debug(ctx, "no group or user matched query",
			zap.String("query", groupQuery))
	}
	return users, nil
}
