// Package scope implements the project discovery and filtering engine.
//
// Pipeline:
//
//	Resolver  -> turns a free-text group query into namespaces
//	Collector -> gathers the candidate project set, deduplicated by ID
//	Filter    -> narrows to projects created or committed-to by an identity
//	Renderer  -> orders the final set and emits a listing or checkout config
//
// Build composes the first three stages; rendering is a separate pure
// step so callers can reuse one resolved scope for several outputs.
package scope
