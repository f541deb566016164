// SPDX-License-Identifier: MPL-2.0

package scope

type (
	// Scope is a named node in the graph: a set of directly declared
	// dependencies plus extends-edges to other scopes. Scopes are created
	// and mutated through a Graph; the zero value is not usable.
	Scope struct {
		// Name uniquely identifies the scope within its graph.
		Name string
		// Description is optional human-readable text shown by inspection
		// commands.
		Description string

		// direct holds the directly declared dependencies.
		direct DependencySet
		// extends holds parent scopes in insertion order for deterministic
		// traversal.
		extends []*Scope
	}

	// Graph is the registry of scopes for one build configuration. All
	// mutation happens during the configuration phase; Resolve is read-only
	// and recomputes from current state on every call, so a mutation
	// followed by a Resolve always reflects the mutation.
	Graph struct {
		scopes map[string]*Scope
		// order tracks creation order for deterministic listing.
		order []string
	}
)

// Direct returns the directly declared dependencies, excluding anything
// inherited through extends-edges.
func (s *Scope) Direct() DependencySet {
	out := make(DependencySet, len(s.direct))
	for k, v := range s.direct {
		out[k] = v
	}
	return out
}

// Extends returns the parent scopes in insertion order.
func (s *Scope) Extends() []*Scope {
	out := make([]*Scope, len(s.extends))
	copy(out, s.extends)
	return out
}

// NewGraph creates an empty scope graph.
func NewGraph() *Graph {
	return &Graph{scopes: make(map[string]*Scope)}
}

// CreateScope registers a new scope. Returns DuplicateScopeError if the name
// is already taken in this graph.
func (g *Graph) CreateScope(name, description string) (*Scope, error) {
	if _, ok := g.scopes[name]; ok {
		return nil, &DuplicateScopeError{Name: name}
	}
	s := &Scope{
		Name:        name,
		Description: description,
		direct:      make(DependencySet),
	}
	g.scopes[name] = s
	g.order = append(g.order, name)
	return s, nil
}

// Lookup returns the scope with the given name, or UnknownScopeError.
func (g *Graph) Lookup(name string) (*Scope, error) {
	s, ok := g.scopes[name]
	if !ok {
		return nil, &UnknownScopeError{Name: name}
	}
	return s, nil
}

// Scopes returns all scopes in creation order.
func (g *Graph) Scopes() []*Scope {
	out := make([]*Scope, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.scopes[name])
	}
	return out
}

// Remove deletes a scope from the graph and drops extends-edges pointing at
// it from the remaining scopes. Not part of normal configuration flow; it
// exists so that a consumer resolving through a stale reference fails with
// UnknownScopeError instead of corrupting state.
func (g *Graph) Remove(name string) error {
	s, ok := g.scopes[name]
	if !ok {
		return &UnknownScopeError{Name: name}
	}
	delete(g.scopes, name)
	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	for _, other := range g.scopes {
		for i, parent := range other.extends {
			if parent == s {
				other.extends = append(other.extends[:i], other.extends[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Extend adds the edge child -> parent, making parent's resolved set part of
// child's. Returns CycleError, with the graph unchanged, if parent can
// already reach child through existing extends-edges. Extending the same
// parent twice is a no-op.
func (g *Graph) Extend(child, parent *Scope) error {
	if child == parent {
		return &CycleError{Child: child.Name, Parent: parent.Name, Path: []string{parent.Name, child.Name}}
	}
	for _, p := range child.extends {
		if p == parent {
			return nil
		}
	}
	// Reachability check before insertion: if parent already reaches child,
	// the new edge would close a cycle.
	if path := g.pathBetween(parent, child); path != nil {
		return &CycleError{Child: child.Name, Parent: parent.Name, Path: path}
	}
	child.extends = append(child.extends, parent)
	return nil
}

// AddDependency declares dep as a direct dependency of s. Set semantics:
// adding the same coordinate twice has no effect.
func (g *Graph) AddDependency(s *Scope, dep Dependency) {
	s.direct.Add(dep)
}

// Resolve computes the transitive dependency set of s: its direct
// dependencies unioned with the resolved sets of everything it extends.
// Depth-first with a visited set, so a scope reachable through multiple
// paths (diamond inheritance) contributes its dependencies exactly once.
// The result is computed fresh from the graph's current state; nothing is
// cached across calls.
func (g *Graph) Resolve(s *Scope) DependencySet {
	out := make(DependencySet)
	visited := make(map[*Scope]bool)
	g.collect(s, visited, out)
	return out
}

// ResolveName is Resolve for callers that hold a scope by name, such as
// packaging tasks re-reading the graph at execution time.
func (g *Graph) ResolveName(name string) (DependencySet, error) {
	s, err := g.Lookup(name)
	if err != nil {
		return nil, err
	}
	return g.Resolve(s), nil
}

func (g *Graph) collect(s *Scope, visited map[*Scope]bool, out DependencySet) {
	if visited[s] {
		return
	}
	visited[s] = true
	for k, v := range s.direct {
		out[k] = v
	}
	for _, parent := range s.extends {
		g.collect(parent, visited, out)
	}
}

// pathBetween returns the scope names along an extends-path from src to dst,
// or nil if dst is unreachable from src.
func (g *Graph) pathBetween(src, dst *Scope) []string {
	if src == dst {
		return []string{src.Name}
	}
	for _, parent := range src.extends {
		if sub := g.pathBetween(parent, dst); sub != nil {
			return append([]string{src.Name}, sub...)
		}
	}
	return nil
}
