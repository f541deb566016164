// SPDX-License-Identifier: EPL-2.0

// Package issue maps warpack failure classes to user-facing guidance. Each
// issue carries a markdown message rendered with glamour plus documentation
// links; CLI commands look issues up by id when surfacing an error to a
// human instead of to a log.
package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	WarfileNotFoundId Id = iota + 1
	WarfileParseErrorId
	DuplicateScopeId
	UnknownScopeId
	DependencyCycleId
	MissingArtifactId
	ArchiveWriteFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to look the issue up
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty; every issue type has docs
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	warfileNotFoundIssue = &Issue{
		id: WarfileNotFoundId,
		mdMsg: `
# No warfile found!

We searched the current directory and every parent directory but found no
warfile.cue.

## Things you can try
- Scaffold one in your project directory:
~~~
$ warpack init
~~~
- Or run warpack from inside the project:
~~~
$ cd /path/to/your/project
$ warpack package
~~~`,
		docLinks: []HttpLink{"https://warpack.dev/docs/warfile"},
	}

	warfileParseErrorIssue = &Issue{
		id: WarfileParseErrorId,
		mdMsg: `
# Your warfile did not validate

The warfile was found but does not match the expected schema. The error
message above names the offending field, e.g. ` + "`scopes[0].name`" + `.

## Example warfile
~~~cue
name: "shop"

scopes: [
	{name: "runtime", dependencies: ["com.example:lib-a:1.0.0"]},
]

artifacts: {
	"com.example:lib-a:1.0.0": "libs/lib-a.jar"
}
~~~`,
		docLinks: []HttpLink{"https://warpack.dev/docs/warfile"},
	}

	duplicateScopeIssue = &Issue{
		id: DuplicateScopeId,
		mdMsg: `
# Scope name already taken

A scope with this name already exists in the build. Scope names are unique
per build; declaring an existing name in the warfile *augments* that scope,
so you rarely need to create one with a fresh name.

The built-in scopes are ` + "`compile`, `runtime`, `provided-compile` and `provided-runtime`" + `.`,
		docLinks: []HttpLink{"https://warpack.dev/docs/scopes"},
	}

	unknownScopeIssue = &Issue{
		id: UnknownScopeId,
		mdMsg: `
# Unknown scope

Something referenced a scope that does not exist in this build: an
` + "`extends`" + ` entry, or the packaging task's base/subtract setting.

## Things you can try
- List the scopes the build actually has:
~~~
$ warpack scopes
~~~
- Check the spelling in your warfile's ` + "`scopes`" + ` and ` + "`packaging`" + ` sections.`,
		docLinks: []HttpLink{"https://warpack.dev/docs/scopes"},
	}

	dependencyCycleIssue = &Issue{
		id: DependencyCycleId,
		mdMsg: `
# Scope extends cycle

An ` + "`extends`" + ` entry would make a scope inherit from itself. The error
message above shows the chain that closes the loop. Remove one of the edges;
scope inheritance must stay acyclic.`,
		docLinks: []HttpLink{"https://warpack.dev/docs/scopes#extends"},
	}

	missingArtifactIssue = &Issue{
		id: MissingArtifactId,
		mdMsg: `
# No file for a packaged dependency

A dependency ended up on the packaging classpath, but the warfile's
` + "`artifacts`" + ` store has no file mapping for its coordinate.

## Things you can try
- Add a mapping:
~~~cue
artifacts: {
	"com.example:lib-a:1.0.0": "libs/lib-a.jar"
}
~~~
- Or, if the deployment environment provides it, move the dependency into
` + "`provided-compile`" + ` or ` + "`provided-runtime`" + `.`,
		docLinks: []HttpLink{"https://warpack.dev/docs/artifacts"},
	}

	archiveWriteFailedIssue = &Issue{
		id: ArchiveWriteFailedId,
		mdMsg: `
# Could not write the archive

The packaging classpath was computed but writing the archive failed. This is
usually a filesystem problem: a missing source file, a read-only destination
directory, or a disk that ran out of space.`,
		docLinks: []HttpLink{"https://warpack.dev/docs/packaging"},
	}

	registry = map[Id]*Issue{
		WarfileNotFoundId:    warfileNotFoundIssue,
		WarfileParseErrorId:  warfileParseErrorIssue,
		DuplicateScopeId:     duplicateScopeIssue,
		UnknownScopeId:       unknownScopeIssue,
		DependencyCycleId:    dependencyCycleIssue,
		MissingArtifactId:    missingArtifactIssue,
		ArchiveWriteFailedId: archiveWriteFailedIssue,
	}
)

// Lookup returns the issue for an id, or nil if the id is unknown.
func Lookup(id Id) *Issue {
	return registry[id]
}

// Ids returns every registered issue id in ascending order.
func Ids() []Id {
	ids := maps.Keys(registry)
	slices.Sort(ids)
	return ids
}
