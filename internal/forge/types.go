package forge

// NamespaceKind distinguishes group namespaces from user namespaces.
type NamespaceKind int

const (
	// KindGroup is a shared group/organization namespace.
	KindGroup NamespaceKind = iota
	// KindUser is a personal user namespace. On most forges a user's
	// projects are an implicit, non-listable group, so user namespaces
	// are only reachable through user search.
	KindUser
)

// String implements fmt.Stringer.
func (k NamespaceKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindUser:
		return "user"
	default:
		return "unknown"
	}
}

// Namespace is a resolved group or user under which projects are
// organized. Resolved once per invocation and never persisted.
type Namespace struct {
	ID   int64
	Path string
	Kind NamespaceKind
}

// Project is a single repository hosted on the forge. Projects are
// value objects pulled from the remote API; the pipeline never
// mutates them.
type Project struct {
	// ID is the forge-assigned numeric identifier. Deduplication
	// across namespaces keys on it.
	ID int64

	// Path is the short (bare) project name.
	Path string

	// FullPath is the namespace-qualified path, e.g. "group/project".
	FullPath string

	// CreatorID identifies the user that created the project.
	CreatorID int64

	// SSHURL is the SSH clone URL.
	SSHURL string

	// Namespace is a weak back-reference to the namespace the project
	// was collected through. Lookup only, may be nil for globally
	// listed projects.
	Namespace *Namespace

	// Canonical reports whether this is the full project record.
	// Listing endpoints may return lightweight records that cannot be
	// used for commit scans; those must be re-fetched by ID first.
	Canonical bool
}

// Identity is the authenticated user.
type Identity struct {
	ID       int64
	Username string
}

// Visibility controls who can see a created project.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)
