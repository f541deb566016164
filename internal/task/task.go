// SPDX-License-Identifier: MPL-2.0

// Package task implements the packaging task: the execution unit that
// materializes an archive from a content root and a lazily derived
// classpath. The task does not own its scopes; it holds their names and
// re-resolves through the scope graph at execution time, so scope and
// dependency declarations made after the task was configured are honored.
package task

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"warpack/internal/archive"
	"warpack/internal/classpath"
	"warpack/internal/scope"
)

// LibDir is the archive directory that receives classpath dependencies,
// following the WAR layout convention.
const LibDir = "WEB-INF/lib"

type (
	// Locator maps a dependency coordinate to the file that backs it. File
	// paths are resolved here and only here, at execution time; dependency
	// identity everywhere else is the coordinate.
	Locator interface {
		FileFor(dep scope.Dependency) (string, error)
	}

	// Task is one archive-build invocation.
	Task struct {
		// Name identifies the task; the externally visible packaging task
		// is named "package".
		Name string
		// ContentRoot is the directory whose files are included verbatim.
		ContentRoot string
		// Destination is the archive output path.
		Destination string

		// classpath is the deferred classpath computation, invoked once per
		// execution.
		classpath classpath.Provider
		// locator resolves coordinates to files.
		locator Locator
		// writer is the archive writer collaborator.
		writer archive.Writer

		state State
	}
)

// New configures a packaging task. The returned task is in StateConfigured;
// no files are read until Execute.
func New(name string, g *scope.Graph, base, subtract string, contentRoot, destination string, locator Locator, writer archive.Writer) *Task {
	return &Task{
		Name:        name,
		ContentRoot: contentRoot,
		Destination: destination,
		classpath:   classpath.Derive(g, base, subtract),
		locator:     locator,
		writer:      writer,
		state:       StateConfigured,
	}
}

// State returns the task's current lifecycle state.
func (t *Task) State() State {
	return t.state
}

// Result describes one completed execution.
type Result struct {
	// Destination is the written archive path.
	Destination string
	// Classpath is the resolved packaging classpath, sorted by coordinate.
	Classpath []scope.Dependency
	// Entries are the archive entries that were written, in the order given
	// to the writer.
	Entries []archive.Entry
}

// Execute runs the task: it reads the content root listing and invokes the
// deferred classpath now, maps each classpath dependency to a file under
// WEB-INF/lib, and calls the archive writer exactly once with the union.
// Errors abort the run and are returned as-is for the caller to surface;
// nothing is retried. Executing again performs a full fresh run.
func (t *Task) Execute(ctx context.Context) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("packaging task %s canceled: %w", t.Name, ctx.Err())
	default:
	}

	if err := t.transition(StateReady); err != nil {
		return nil, err
	}

	// Both reads happen here, at execution time.
	contentEntries, err := archive.DirEntries(t.ContentRoot)
	if err != nil {
		return nil, fmt.Errorf("packaging task %s: %w", t.Name, err)
	}
	deps, err := t.classpath()
	if err != nil {
		return nil, fmt.Errorf("packaging task %s: %w", t.Name, err)
	}

	classpathDeps := deps.Values()
	entries := make([]archive.Entry, 0, len(contentEntries)+len(classpathDeps))
	entries = append(entries, contentEntries...)
	for _, dep := range classpathDeps {
		src, err := t.locator.FileFor(dep)
		if err != nil {
			return nil, fmt.Errorf("packaging task %s: %w", t.Name, err)
		}
		entries = append(entries, archive.Entry{
			SourcePath:  src,
			ArchivePath: LibDir + "/" + dep.ArchiveFileName(),
		})
	}

	log.Info("packaging archive",
		"task", t.Name,
		"destination", t.Destination,
		"content_files", len(contentEntries),
		"classpath", len(classpathDeps))

	if err := t.writer.Write(entries, t.Destination); err != nil {
		return nil, fmt.Errorf("packaging task %s: %w", t.Name, err)
	}
	if err := t.transition(StateExecuted); err != nil {
		return nil, err
	}

	return &Result{
		Destination: t.Destination,
		Classpath:   classpathDeps,
		Entries:     entries,
	}, nil
}

func (t *Task) transition(to State) error {
	if !isAllowedTransition(t.state, to) {
		return fmt.Errorf("packaging task %s: disallowed transition %s -> %s", t.Name, t.state, to)
	}
	t.state = to
	return nil
}
