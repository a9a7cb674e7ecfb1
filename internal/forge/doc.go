// Package forge defines the domain model for code-hosting-platform
// ("forge") entities and the client contract the scope pipeline is
// built on.
//
// Entities:
//   - Namespace: a group or user account under which projects live
//   - Project: a single hosted repository
//   - Identity: the authenticated user or a committer email set
//
// The Client interface abstracts the remote API. Implementations own
// transport, authentication, and pagination; callers see fully
// materialized result slices. The concrete adapter lives in the
// github subpackage.
package forge
