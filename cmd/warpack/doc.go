// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for warpack.
//
// The command surface is small: "package" builds the archive (the externally
// visible packaging task), "scopes" inspects the dependency-scope graph a
// warfile produces, and "init" scaffolds a new warfile.
package cmd
