// SPDX-License-Identifier: MPL-2.0

package cmd

import "fmt"

// ExitError carries an explicit process exit code through the cobra/fang
// error path. Commands return it instead of calling os.Exit directly so
// deferred cleanup still runs.
type ExitError struct {
	// Code is the process exit code.
	Code int
	// Err is the underlying error, may be nil for silent exits.
	Err error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
