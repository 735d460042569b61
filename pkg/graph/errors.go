package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction and lookups.
var (
	// ErrParse signals a malformed node or edge record. Fatal to graph
	// construction; the caller surfaces it, nothing retries.
	ErrParse = errors.New("malformed graph description")
	// ErrNodeNotFound signals a lookup for an undeclared node id.
	ErrNodeNotFound = errors.New("node not found")
)

// BuildError provides structured error information for graph construction.
type BuildError struct {
	Op     string // operation that failed, e.g. "ParseNode", "AddEdge"
	Entity string // "node", "edge", "line"
	ID     string // entity id or offending input fragment
	Cause  error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *BuildError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
