// SPDX-License-Identifier: MPL-2.0

package scope

import (
	"fmt"
	"strings"
)

type (
	// DuplicateScopeError indicates that a scope name was registered twice
	// in the same graph.
	DuplicateScopeError struct {
		// Name is the scope name that already exists.
		Name string
	}

	// UnknownScopeError indicates a reference to a scope that does not exist
	// in the graph. It can occur at configuration time (typo in an extends
	// clause) or at execution time (scope removed after a task was wired).
	UnknownScopeError struct {
		// Name is the scope name that could not be found.
		Name string
	}

	// CycleError indicates that an extends-edge would make a scope reach
	// itself. The offending edge is never inserted; the graph is unchanged.
	CycleError struct {
		// Child and Parent identify the rejected edge child -> parent.
		Child  string
		Parent string
		// Path is the existing chain from parent back to child that would
		// close the cycle (not necessarily the only one, but enough to
		// identify the problem).
		Path []string
	}
)

func (e *DuplicateScopeError) Error() string {
	return fmt.Sprintf("scope %q already exists", e.Name)
}

func (e *UnknownScopeError) Error() string {
	return fmt.Sprintf("unknown scope %q", e.Name)
}

func (e *CycleError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("scope %q cannot extend %q: extends cycle %s",
			e.Child, e.Parent, strings.Join(e.Path, " -> "))
	}
	return fmt.Sprintf("scope %q cannot extend %q: extends cycle", e.Child, e.Parent)
}
