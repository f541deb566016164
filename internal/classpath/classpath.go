// SPDX-License-Identifier: MPL-2.0

// Package classpath derives the packaging classpath from the scope graph as
// a deferred computation. A packaging task is configured long before the
// build configuration is final: scripts and tooling may keep adding
// dependencies to either scope after the task is declared. Derive therefore
// never snapshots; the returned Provider re-walks the graph on every
// invocation, so declaration order cannot affect the result.
package classpath

import "warpack/internal/scope"

// Provider is a deferred classpath computation. Invoking it resolves both
// scopes against the graph's state at that moment and returns
// resolve(base) − resolve(subtract), by coordinate identity. It fails with
// scope.UnknownScopeError if either scope has disappeared from the graph
// since derivation.
type Provider func() (scope.DependencySet, error)

// Derive builds a Provider for resolve(base) − resolve(subtract). Only the
// scope names are captured: the graph is re-read through them on each call,
// which is what makes late mutation and even scope removal visible.
func Derive(g *scope.Graph, base, subtract string) Provider {
	return func() (scope.DependencySet, error) {
		baseSet, err := g.ResolveName(base)
		if err != nil {
			return nil, err
		}
		subtractSet, err := g.ResolveName(subtract)
		if err != nil {
			return nil, err
		}
		return baseSet.Minus(subtractSet), nil
	}
}
