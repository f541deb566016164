// SPDX-License-Identifier: MPL-2.0

// Package scope implements the dependency-scope graph that drives archive
// packaging. A scope is a named set of dependencies; scopes may extend other
// scopes, forming a DAG, and resolving a scope yields the transitive union of
// its own and all inherited dependencies.
//
// The graph is mutated during the configuration phase (CreateScope, Extend,
// AddDependency) and read during the execution phase (Resolve). Resolution is
// recomputed on every call so that mutations made after a consumer was wired
// are still honored. Cycle detection happens on edge insertion: Extend rejects
// an edge that would make a scope reach itself.
//
// Two scopes are part of the external contract and exist in every graph built
// by the build assembler: "provided-compile" and "provided-runtime", where
// provided-runtime extends provided-compile. Build authors reference them by
// name to mark dependencies that the deployment environment supplies.
package scope
