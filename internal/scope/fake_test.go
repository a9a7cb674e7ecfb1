package scope

import (
	"context"
	"iter"
	"sync"

	"github.com/fyrsmithlabs/forgescope/internal/forge"
)

// fakeClient is an in-memory forge.Client for pipeline tests.
type fakeClient struct {
	mu sync.Mutex

	groups     map[string][]forge.Namespace
	users      map[string][]forge.Namespace
	nsProjects map[int64][]forge.Project
	all        []forge.Project
	canonical  map[int64]forge.Project
	commits    map[int64][]string
	commitErr  map[int64]error
	me         forge.Identity
	myEmails   []string
	createErr  map[string]error

	groupSearches int
	userSearches  int
	getCalls      []int64
	created       []forge.CreateOptions
}

var _ forge.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		groups:     map[string][]forge.Namespace{},
		users:      map[string][]forge.Namespace{},
		nsProjects: map[int64][]forge.Project{},
		canonical:  map[int64]forge.Project{},
		commits:    map[int64][]string{},
		commitErr:  map[int64]error{},
		createErr:  map[string]error{},
	}
}

func (f *fakeClient) SearchGroups(_ context.Context, query string) ([]forge.Namespace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groupSearches++
	return f.groups[query], nil
}

func (f *fakeClient) SearchUsers(_ context.Context, query string) ([]forge.Namespace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userSearches++
	return f.users[query], nil
}

func (f *fakeClient) ListNamespaceProjects(_ context.Context, ns forge.Namespace) ([]forge.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nsProjects[ns.ID], nil
}

func (f *fakeClient) ListAllProjects(context.Context) ([]forge.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.all, nil
}

func (f *fakeClient) GetProject(_ context.Context, id int64) (forge.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, id)
	p, ok := f.canonical[id]
	if !ok {
		return forge.Project{}, forge.ErrRemoteUnavailable
	}
	return p, nil
}

func (f *fakeClient) CommitEmails(_ context.Context, projectID int64) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f.mu.Lock()
		err := f.commitErr[projectID]
		emails := f.commits[projectID]
		f.mu.Unlock()
		if err != nil {
			yield("", err)
			return
		}
		for _, e := range emails {
			if !yield(e, nil) {
				return
			}
		}
	}
}

func (f *fakeClient) CurrentUser(context.Context) (forge.Identity, error) {
	return f.me, nil
}

func (f *fakeClient) CurrentUserEmails(context.Context) ([]string, error) {
	return f.myEmails, nil
}

func (f *fakeClient) CreateProject(_ context.Context, opts forge.CreateOptions) (forge.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr[opts.Name]; err != nil {
		return forge.Project{}, err
	}
	f.created = append(f.created, opts)
	return forge.Project{ID: int64(1000 + len(f.created)), Path: opts.Name, FullPath: opts.Name, Canonical: true}, nil
}
