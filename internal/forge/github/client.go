// Package github adapts the GitHub REST API to the forge.Client
// contract. It owns authentication, client-side rate limiting,
// pagination, and translation of API failures into the forge error
// taxonomy.
package github

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strings"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	pageSize = 100

	// defaultRPS keeps a comfortable margin under GitHub's 5000
	// requests/hour authenticated budget even for long commit scans.
	defaultRPS = 1.0
	burst      = 5
)

// Client implements forge.Client over the GitHub REST API.
type Client struct {
	gh      *github.Client
	limiter *rate.Limiter
}

var _ forge.Client = (*Client)(nil)

// Options configures a Client.
type Options struct {
	// Token is a personal access token. Required.
	Token string

	// BaseURL overrides the API endpoint, for GitHub Enterprise or
	// tests. Must end in a slash. Empty means api.github.com.
	BaseURL string

	// RequestsPerSecond overrides the client-side rate limit.
	// Zero means the package default.
	RequestsPerSecond float64
}

// New creates an authenticated client.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("token not set")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	gh := github.NewClient(oauth2.NewClient(ctx, ts))
	if opts.BaseURL != "" {
		var err error
		gh, err = gh.WithEnterpriseURLs(opts.BaseURL, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
	}

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	return &Client{
		gh:      gh,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// SearchGroups searches organizations by name.
func (c *Client) SearchGroups(ctx context.Context, query string) ([]forge.Namespace, error) {
	return c.searchNamespaces(ctx, query, forge.KindGroup)
}

// SearchUsers searches user accounts by name.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]forge.Namespace, error) {
	return c.searchNamespaces(ctx, query, forge.KindUser)
}

func (c *Client) searchNamespaces(ctx context.Context, query string, kind forge.NamespaceKind) ([]forge.Namespace, error) {
	accountType := "org"
	if kind == forge.KindUser {
		accountType = "user"
	}
	q := fmt.Sprintf("%s in:login type:%s", query, accountType)

	var out []forge.Namespace
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: pageSize}}
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		res, resp, err := c.gh.Search.Users(ctx, q, opts)
		if err != nil {
			return nil, translate(err)
		}
		for _, u := range res.Users {
			out = append(out, forge.Namespace{
				ID:   u.GetID(),
				Path: u.GetLogin(),
				Kind: kind,
			})
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListNamespaceProjects lists the repositories of one namespace.
func (c *Client) ListNamespaceProjects(ctx context.Context, ns forge.Namespace) ([]forge.Project, error) {
	var out []forge.Project
	collect := func(repos []*github.Repository) {
		for _, r := range repos {
			p := toProject(r)
			p.Namespace = &ns
			out = append(out, p)
		}
	}

	switch ns.Kind {
	case forge.KindGroup:
		opts := &github.RepositoryListByOrgOptions{ListOptions: github.ListOptions{PerPage: pageSize}}
		for {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
			repos, resp, err := c.gh.Repositories.ListByOrg(ctx, ns.Path, opts)
			if err != nil {
				return nil, translate(err)
			}
			collect(repos)
			if resp.NextPage == 0 {
				return out, nil
			}
			opts.Page = resp.NextPage
		}
	case forge.KindUser:
		opts := &github.RepositoryListOptions{ListOptions: github.ListOptions{PerPage: pageSize}}
		for {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
			repos, resp, err := c.gh.Repositories.List(ctx, ns.Path, opts)
			if err != nil {
				return nil, translate(err)
			}
			collect(repos)
			if resp.NextPage == 0 {
				return out, nil
			}
			opts.Page = resp.NextPage
		}
	default:
		return nil, fmt.Errorf("%w: namespace kind %d", forge.ErrTypeMismatch, ns.Kind)
	}
}

// ListAllProjects lists every repository visible to the authenticated
// user, across ownership, collaboration, and organization membership.
func (c *Client) ListAllProjects(ctx context.Context) ([]forge.Project, error) {
	var out []forge.Project
	opts := &github.RepositoryListOptions{
		Affiliation: "owner,collaborator,organization_member",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		repos, resp, err := c.gh.Repositories.List(ctx, "", opts)
		if err != nil {
			return nil, translate(err)
		}
		for _, r := range repos {
			out = append(out, toProject(r))
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// GetProject fetches the canonical repository record by ID.
func (c *Client) GetProject(ctx context.Context, id int64) (forge.Project, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return forge.Project{}, err
	}
	r, _, err := c.gh.Repositories.GetByID(ctx, id)
	if err != nil {
		return forge.Project{}, translate(err)
	}
	p := toProject(r)
	p.Canonical = true
	return p, nil
}

// CommitEmails yields committer emails of the default branch history,
// newest first, paging lazily.
func (c *Client) CommitEmails(ctx context.Context, projectID int64) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		p, err := c.GetProject(ctx, projectID)
		if err != nil {
			yield("", err)
			return
		}
		owner, name, err := splitFullPath(p.FullPath)
		if err != nil {
			yield("", err)
			return
		}

		opts := &github.CommitsListOptions{ListOptions: github.ListOptions{PerPage: pageSize}}
		for {
			if err := c.limiter.Wait(ctx); err != nil {
				yield("", err)
				return
			}
			commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, name, opts)
			if err != nil {
				yield("", translateCommitsErr(err))
				return
			}
			for _, commit := range commits {
				if !yield(commit.GetCommit().GetCommitter().GetEmail(), nil) {
					return
				}
			}
			if resp.NextPage == 0 {
				return
			}
			opts.Page = resp.NextPage
		}
	}
}

// CurrentUser returns the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (forge.Identity, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return forge.Identity{}, err
	}
	u, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return forge.Identity{}, translate(err)
	}
	return forge.Identity{ID: u.GetID(), Username: u.GetLogin()}, nil
}

// CurrentUserEmails returns all registered email addresses of the
// authenticated user.
func (c *Client) CurrentUserEmails(ctx context.Context) ([]string, error) {
	var out []string
	opts := &github.ListOptions{PerPage: pageSize}
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		emails, resp, err := c.gh.Users.ListEmails(ctx, opts)
		if err != nil {
			return nil, translate(err)
		}
		for _, e := range emails {
			out = append(out, e.GetEmail())
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateProject creates a repository under the given namespace, or
// under the authenticated user when the namespace is nil.
func (c *Client) CreateProject(ctx context.Context, opts forge.CreateOptions) (forge.Project, error) {
	org := ""
	if opts.Namespace != nil {
		if opts.Namespace.Kind != forge.KindGroup {
			return forge.Project{}, fmt.Errorf("%w: create target must be a group namespace", forge.ErrTypeMismatch)
		}
		org = opts.Namespace.Path
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return forge.Project{}, err
	}
	r, _, err := c.gh.Repositories.Create(ctx, org, &github.Repository{
		Name:    github.String(opts.Name),
		Private: github.Bool(opts.Visibility != forge.VisibilityPublic),
	})
	if err != nil {
		return forge.Project{}, translateCreateErr(err)
	}
	p := toProject(r)
	p.Canonical = true
	return p, nil
}

// toProject maps a repository record. Records missing the clone URL
// or full path are marked non-canonical so the pipeline re-fetches
// them before commit scans.
func toProject(r *github.Repository) forge.Project {
	return forge.Project{
		ID:        r.GetID(),
		Path:      r.GetName(),
		FullPath:  r.GetFullName(),
		CreatorID: r.GetOwner().GetID(),
		SSHURL:    r.GetSSHURL(),
		Canonical: r.GetSSHURL() != "" && r.GetFullName() != "",
	}
}

func splitFullPath(fullPath string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(fullPath, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("malformed project path %q", fullPath)
	}
	return owner, name, nil
}

// translate maps transport and API failures to the forge taxonomy.
// Anything that is not a structured API response is a connectivity
// problem and fatal to the pipeline.
func translate(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		return fmt.Errorf("github api: %w", err)
	}
	var rlErr *github.RateLimitError
	if errors.As(err, &rlErr) {
		return fmt.Errorf("github api: %w", err)
	}
	return fmt.Errorf("%w: %w", forge.ErrRemoteUnavailable, err)
}

// translateCommitsErr additionally maps the empty-repository and
// not-found responses of the commit listing endpoint.
func translateCommitsErr(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusConflict, http.StatusNotFound:
			return fmt.Errorf("%w: %w", forge.ErrNoRepository, err)
		}
	}
	return translate(err)
}

// translateCreateErr maps name conflicts and validation failures of
// repository creation.
func translateCreateErr(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		if ghErr.Response.StatusCode == http.StatusUnprocessableEntity {
			return fmt.Errorf("%w: %w", forge.ErrCreateConflict, err)
		}
	}
	return translate(err)
}
