package flatten

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaNotFound matches any NotFoundError.
	ErrSchemaNotFound = errors.New("flatten: schema not found")

	// ErrUnresolvedReference matches any ReferenceError.
	ErrUnresolvedReference = errors.New("flatten: unresolved reference")
)

// NotFoundError reports a root schema name missing from the definitions.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("flatten: schema %q not found", e.Name)
}

// Is lets errors.Is match ErrSchemaNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrSchemaNotFound
}

// ReferenceError lists references that could not be resolved when strict
// reference checking is enabled.
type ReferenceError struct {
	Skipped []SkippedRef
}

func (e *ReferenceError) Error() string {
	if len(e.Skipped) == 0 {
		return "flatten: unresolved reference"
	}
	refs := make([]string, 0, len(e.Skipped))
	for _, skipped := range e.Skipped {
		refs = append(refs, fmt.Sprintf("%s (at %s)", skipped.Ref, skipped.Model))
	}
	return fmt.Sprintf("flatten: %d unresolved reference(s): %s", len(e.Skipped), strings.Join(refs, ", "))
}

// Is lets errors.Is match ErrUnresolvedReference.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}
