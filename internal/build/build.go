// SPDX-License-Identifier: MPL-2.0

// Package build assembles a build configuration from a warfile: it creates
// the contract scopes, applies the user's scope declarations, wires the
// packaging task against the scope graph, and registers the published
// artifact. This is the configuration phase; nothing here reads files or
// resolves scopes. Execution happens later through Build.Execute, which is
// when the deferred classpath and content listing are finally read.
package build

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"warpack/internal/archive"
	"warpack/internal/publish"
	"warpack/internal/scope"
	"warpack/internal/task"
	"warpack/pkg/warfile"
)

// Scope and task names that are part of the external contract: build
// authors reference these by name.
const (
	// ProvidedCompileScope holds compile-time dependencies supplied by the
	// deployment environment; they never enter the archive.
	ProvidedCompileScope = "provided-compile"
	// ProvidedRuntimeScope extends ProvidedCompileScope with runtime-only
	// provided dependencies.
	ProvidedRuntimeScope = "provided-runtime"
	// CompileScope holds the application's compile dependencies.
	CompileScope = "compile"
	// RuntimeScope holds the application's runtime dependencies; it is the
	// default packaging base.
	RuntimeScope = "runtime"

	// PackageTaskName is the externally visible packaging task identifier.
	PackageTaskName = "package"

	// ComponentName is the published component's name.
	ComponentName = "web-application"
	// MasterVariant is the variant label of the archive artifact.
	MasterVariant = "master"
	// UsageAttribute and UsageJavaRuntime classify the artifact for
	// consumers selecting compatible variants.
	UsageAttribute   = "usage"
	UsageJavaRuntime = "java-runtime"
)

// Build is one assembled build configuration: the shared scope graph, the
// packaging task reading through it, and the publication handle for the
// task's eventual output.
type Build struct {
	Graph     *scope.Graph
	Task      *task.Task
	Component *publish.Component
	Artifact  *publish.Artifact

	warfile *warfile.Warfile
}

// storeLocator resolves coordinates through the warfile's artifact store.
type storeLocator struct {
	w *warfile.Warfile
}

func (l storeLocator) FileFor(dep scope.Dependency) (string, error) {
	return l.w.ArtifactFile(dep)
}

// Assemble runs the configuration phase for a parsed warfile. The returned
// Build's task is in StateConfigured; the graph may still be mutated (more
// scopes, more dependencies) before Execute, and such mutations are honored.
func Assemble(w *warfile.Warfile, writer archive.Writer) (*Build, error) {
	g := scope.NewGraph()
	if err := createContractScopes(g); err != nil {
		return nil, err
	}
	if err := applyDeclarations(g, w); err != nil {
		return nil, err
	}

	t := task.New(PackageTaskName, g, w.BaseScope(), w.SubtractScope(),
		w.ContentRoot(), w.Destination(), storeLocator{w: w}, writer)

	artifact := publish.NewArtifact(MasterVariant,
		map[string]string{UsageAttribute: UsageJavaRuntime},
		func() (string, error) {
			if t.State() != task.StateExecuted {
				return "", publish.ErrNotMaterialized
			}
			return t.Destination, nil
		})
	component := publish.NewComponent(ComponentName)
	component.Add(artifact)

	log.Debug("build assembled",
		"warfile", w.FilePath,
		"base", w.BaseScope(),
		"subtract", w.SubtractScope(),
		"scopes", len(g.Scopes()))

	return &Build{
		Graph:     g,
		Task:      t,
		Component: component,
		Artifact:  artifact,
		warfile:   w,
	}, nil
}

// Execute runs the packaging task and writes the packaging manifest next to
// the archive. Safe to call more than once; every call is a fresh run.
func (b *Build) Execute(ctx context.Context) (*task.Result, error) {
	res, err := b.Task.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if err := task.NewManifest(res).Save(task.ManifestPath(res.Destination)); err != nil {
		return nil, fmt.Errorf("packaging task %s: %w", b.Task.Name, err)
	}
	return res, nil
}

// createContractScopes builds the fixed part of every graph:
//
//	compile  -> provided-compile
//	runtime  -> compile, provided-runtime
//	provided-runtime -> provided-compile
//
// so provided dependencies are visible to compilation and runtime
// resolution while remaining subtractable at packaging time.
func createContractScopes(g *scope.Graph) error {
	providedCompile, err := g.CreateScope(ProvidedCompileScope,
		"Compile dependencies provided by the deployment environment; not packaged.")
	if err != nil {
		return err
	}
	providedRuntime, err := g.CreateScope(ProvidedRuntimeScope,
		"Runtime dependencies provided by the deployment environment; not packaged.")
	if err != nil {
		return err
	}
	compile, err := g.CreateScope(CompileScope, "Compile classpath of the application.")
	if err != nil {
		return err
	}
	runtime, err := g.CreateScope(RuntimeScope, "Runtime classpath of the application; default packaging base.")
	if err != nil {
		return err
	}

	for _, edge := range [][2]*scope.Scope{
		{providedRuntime, providedCompile},
		{compile, providedCompile},
		{runtime, compile},
		{runtime, providedRuntime},
	} {
		if err := g.Extend(edge[0], edge[1]); err != nil {
			return err
		}
	}
	return nil
}

// applyDeclarations folds the warfile's scope declarations into the graph.
// A declaration naming an existing scope augments it; otherwise the scope is
// created. Extends targets must already exist (declarations are applied in
// file order, contract scopes first).
func applyDeclarations(g *scope.Graph, w *warfile.Warfile) error {
	for _, decl := range w.Scopes {
		s, err := g.Lookup(decl.Name)
		if err != nil {
			s, err = g.CreateScope(decl.Name, decl.Description)
			if err != nil {
				return err
			}
		}
		for _, parentName := range decl.Extends {
			parent, err := g.Lookup(parentName)
			if err != nil {
				return fmt.Errorf("scope %q: %w", decl.Name, err)
			}
			if err := g.Extend(s, parent); err != nil {
				return err
			}
		}
		for _, coordinate := range decl.Dependencies {
			dep, err := scope.ParseDependency(coordinate)
			if err != nil {
				return fmt.Errorf("scope %q: %w", decl.Name, err)
			}
			g.AddDependency(s, dep)
		}
	}
	return nil
}
