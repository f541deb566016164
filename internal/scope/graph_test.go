// SPDX-License-Identifier: MPL-2.0

package scope

import (
	"errors"
	"testing"
)

func dep(t *testing.T, coordinate string) Dependency {
	t.Helper()
	d, err := ParseDependency(coordinate)
	if err != nil {
		t.Fatalf("ParseDependency(%q): %v", coordinate, err)
	}
	return d
}

func TestCreateScope_Duplicate(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	if _, err := g.CreateScope("compile", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := g.CreateScope("compile", "again")
	var dupErr *DuplicateScopeError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateScopeError, got %v", err)
	}
	if dupErr.Name != "compile" {
		t.Errorf("expected name %q in error, got %q", "compile", dupErr.Name)
	}
}

func TestLookup_Unknown(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	_, err := g.Lookup("nope")
	var unknownErr *UnknownScopeError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownScopeError, got %v", err)
	}
	if unknownErr.Name != "nope" {
		t.Errorf("expected name %q in error, got %q", "nope", unknownErr.Name)
	}
}

func TestResolve_NoExtends(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	s, _ := g.CreateScope("runtime", "")
	a := dep(t, "com.example:lib-a:1.0.0")
	b := dep(t, "com.example:lib-b:2.1.0")
	g.AddDependency(s, a)
	g.AddDependency(s, b)

	resolved := g.Resolve(s)
	if len(resolved) != 2 {
		t.Fatalf("expected 2 dependencies, got %d", len(resolved))
	}
	if !resolved.Contains(a) || !resolved.Contains(b) {
		t.Errorf("resolved set missing direct dependencies: %v", resolved.Values())
	}
}

func TestAddDependency_SetSemantics(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	s, _ := g.CreateScope("compile", "")
	a := dep(t, "com.example:lib-a:1.0.0")
	g.AddDependency(s, a)
	g.AddDependency(s, a)
	if got := len(g.Resolve(s)); got != 1 {
		t.Errorf("expected 1 dependency after duplicate add, got %d", got)
	}
}

func TestResolve_Chain(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	a, _ := g.CreateScope("a", "")
	b, _ := g.CreateScope("b", "")
	c, _ := g.CreateScope("c", "")
	if err := g.Extend(a, b); err != nil {
		t.Fatalf("extend a->b: %v", err)
	}
	if err := g.Extend(b, c); err != nil {
		t.Fatalf("extend b->c: %v", err)
	}
	depB := dep(t, "com.example:from-b:1.0.0")
	depC := dep(t, "com.example:from-c:1.0.0")
	g.AddDependency(b, depB)
	g.AddDependency(c, depC)

	resolved := g.Resolve(a)
	if !resolved.Contains(depB) || !resolved.Contains(depC) {
		t.Errorf("resolve through chain missing inherited deps: %v", resolved.Values())
	}
}

func TestResolve_DiamondCountsOnce(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	a, _ := g.CreateScope("a", "")
	b, _ := g.CreateScope("b", "")
	c, _ := g.CreateScope("c", "")
	d, _ := g.CreateScope("d", "")
	// a extends b and c; both extend d.
	for _, edge := range [][2]*Scope{{a, b}, {a, c}, {b, d}, {c, d}} {
		if err := g.Extend(edge[0], edge[1]); err != nil {
			t.Fatalf("extend %s->%s: %v", edge[0].Name, edge[1].Name, err)
		}
	}
	shared := dep(t, "com.example:shared:3.0.0")
	g.AddDependency(d, shared)

	resolved := g.Resolve(a)
	if len(resolved) != 1 {
		t.Fatalf("expected cardinality 1 through diamond, got %d: %v", len(resolved), resolved.Values())
	}
	if !resolved.Contains(shared) {
		t.Errorf("diamond resolution lost the shared dependency")
	}
}

func TestExtend_CycleRejectedGraphUnchanged(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	a, _ := g.CreateScope("a", "")
	b, _ := g.CreateScope("b", "")
	if err := g.Extend(a, b); err != nil {
		t.Fatalf("extend a->b: %v", err)
	}

	err := g.Extend(b, a)
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected CycleError, got %v", err)
	}
	if cycleErr.Child != "b" || cycleErr.Parent != "a" {
		t.Errorf("cycle error names wrong edge: child=%q parent=%q", cycleErr.Child, cycleErr.Parent)
	}
	// The failed call must not have inserted the edge.
	if got := len(b.Extends()); got != 0 {
		t.Errorf("graph changed by failed Extend: b has %d parents", got)
	}
	// And the edge that was there before is still there.
	if got := len(a.Extends()); got != 1 {
		t.Errorf("pre-existing edge lost: a has %d parents", got)
	}
}

func TestExtend_SelfCycle(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	a, _ := g.CreateScope("a", "")
	var cycleErr *CycleError
	if err := g.Extend(a, a); !errors.As(err, &cycleErr) {
		t.Fatalf("expected CycleError for self-extend, got %v", err)
	}
}

func TestExtend_TransitiveCycle(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	a, _ := g.CreateScope("a", "")
	b, _ := g.CreateScope("b", "")
	c, _ := g.CreateScope("c", "")
	if err := g.Extend(a, b); err != nil {
		t.Fatalf("extend a->b: %v", err)
	}
	if err := g.Extend(b, c); err != nil {
		t.Fatalf("extend b->c: %v", err)
	}
	var cycleErr *CycleError
	if err := g.Extend(c, a); !errors.As(err, &cycleErr) {
		t.Fatalf("expected CycleError closing a->b->c->a, got %v", err)
	}
}

func TestExtend_DuplicateEdgeIsNoop(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	a, _ := g.CreateScope("a", "")
	b, _ := g.CreateScope("b", "")
	if err := g.Extend(a, b); err != nil {
		t.Fatalf("extend a->b: %v", err)
	}
	if err := g.Extend(a, b); err != nil {
		t.Fatalf("repeated extend a->b: %v", err)
	}
	if got := len(a.Extends()); got != 1 {
		t.Errorf("expected 1 parent after duplicate extend, got %d", got)
	}
}

func TestResolve_ReflectsLaterMutation(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	s, _ := g.CreateScope("runtime", "")
	first := g.Resolve(s)
	if len(first) != 0 {
		t.Fatalf("expected empty resolution, got %v", first.Values())
	}

	late := dep(t, "com.example:late:1.0.0")
	g.AddDependency(s, late)
	if !g.Resolve(s).Contains(late) {
		t.Errorf("resolution after mutation does not reflect the mutation")
	}
}

func TestRemove_ThenResolveNameFails(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	child, _ := g.CreateScope("child", "")
	parent, _ := g.CreateScope("parent", "")
	if err := g.Extend(child, parent); err != nil {
		t.Fatalf("extend: %v", err)
	}
	if err := g.Remove("parent"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	var unknownErr *UnknownScopeError
	if _, err := g.ResolveName("parent"); !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownScopeError after removal, got %v", err)
	}
	// The surviving scope must still resolve cleanly without the dangling edge.
	if got := len(g.Resolve(child)); got != 0 {
		t.Errorf("dangling extends-edge left after removal: %d deps", got)
	}
}
