// SPDX-License-Identifier: MPL-2.0

// Package cueutil wraps the CUE toolchain's schema-unify-decode flow used by
// every CUE-backed file format in warpack (warfile, tool config): compile the
// embedded schema, compile the user data, unify, validate with concrete
// values, decode into a Go struct. Validation errors are reformatted with
// JSON-style paths so users see "scopes[1].extends" instead of raw CUE
// positions.
package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// MaxFileSize caps parsed file sizes; anything bigger is rejected before
// compilation.
const MaxFileSize = 1 << 20

// ParseAndDecode unifies data with the schema definition at schemaPath
// (e.g. "#Warfile") and decodes the result into T. filename is used in
// error messages only.
func ParseAndDecode[T any](schema, data []byte, schemaPath, filename string) (*T, error) {
	if filename == "" {
		filename = "<input>"
	}
	if int64(len(data)) > MaxFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), int64(MaxFileSize))
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}
	return &result, nil
}

// ParseAndDecodeString is ParseAndDecode with the schema as a string, the
// common case for //go:embed string variables.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath, filename string) (*T, error) {
	return ParseAndDecode[T]([]byte(schema), data, schemaPath, filename)
}
