package api

// Reporter consumes diagnostics for failed allocation calls. Reporters
// are purely observational, never consulted for control flow, and are
// called exactly once per failed allocation or resize with the origin
// of the call - file, function and line - supplied by the caller.
type Reporter interface {
	Allocfail(file, fn string, line int64, err error)
}
