// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"errors"
	"strings"
)

type (
	// ActionableError is an error with context for user-facing messages:
	// what operation failed, what resource was involved, and suggestions
	// for fixing it.
	//
	// Use the ErrorContext builder for construction:
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("load warfile").
	//		WithResource("./warfile.cue").
	//		WithSuggestion("Run 'warpack init' to create one").
	//		Wrap(originalErr).
	//		Build()
	ActionableError struct {
		// Operation describes what was being attempted (e.g. "load warfile",
		// "package archive").
		Operation string

		// Resource identifies the file, scope, or entity involved (optional).
		Resource string

		// Suggestions provides hints on how to fix the issue (optional).
		Suggestions []string

		// Cause is the underlying error (optional).
		Cause error
	}

	// ErrorContext is a fluent builder for ActionableError.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithOperation wraps an error with operation context.
func WrapWithOperation(err error, operation string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Cause: err}
}

// Error returns a concise message suitable for non-verbose output.
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Verbose returns a multi-line message including suggestions.
func (e *ActionableError) Verbose() string {
	var msg strings.Builder
	msg.WriteString(e.Error())
	for _, s := range e.Suggestions {
		msg.WriteString("\n  - ")
		msg.WriteString(s)
	}
	return msg.String()
}

// WithOperation sets the operation being attempted.
func (c *ErrorContext) WithOperation(operation string) *ErrorContext {
	c.operation = operation
	return c
}

// WithResource sets the resource involved.
func (c *ErrorContext) WithResource(resource string) *ErrorContext {
	c.resource = resource
	return c
}

// WithSuggestion appends a fix-it hint. May be called multiple times.
func (c *ErrorContext) WithSuggestion(suggestion string) *ErrorContext {
	c.suggestions = append(c.suggestions, suggestion)
	return c
}

// Wrap records the underlying error.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build constructs the ActionableError.
func (c *ErrorContext) Build() *ActionableError {
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// AsActionable extracts an ActionableError from an error chain, or nil.
func AsActionable(err error) *ActionableError {
	var actionable *ActionableError
	if errors.As(err, &actionable) {
		return actionable
	}
	return nil
}
