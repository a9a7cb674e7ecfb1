package forge

import "errors"

// Common errors.
var (
	// ErrRemoteUnavailable marks a transport or connection failure.
	// Fatal: aborts the pipeline, no retry at this layer.
	ErrRemoteUnavailable = errors.New("remote forge unavailable")

	// ErrNoRepository marks a project with no accessible repository
	// (freshly created, empty, or permission-restricted). Non-fatal:
	// the project is excluded from committer-filtered results.
	ErrNoRepository = errors.New("project has no repository")

	// ErrCreateConflict marks a project create that failed because the
	// name already exists or is invalid. Fatal to that one create only.
	ErrCreateConflict = errors.New("project already exists or name invalid")

	// ErrTypeMismatch marks an entity of unexpected kind reaching a
	// path resolver. Programming-error class, not user-facing.
	ErrTypeMismatch = errors.New("unexpected entity kind")
)
