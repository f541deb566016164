// SPDX-License-Identifier: MPL-2.0

package task

// State is the lifecycle state of a packaging task.
//
// Configured -> Ready -> Executed. Ready is entered immediately before an
// execution, when the task reads the content root listing and the deferred
// classpath; neither read happens earlier. Executed is terminal but not
// one-shot: re-executing recomputes everything freshly instead of reusing a
// stale snapshot.
type State string

const (
	StateConfigured State = "CONFIGURED"
	StateReady      State = "READY"
	StateExecuted   State = "EXECUTED"
)

func isAllowedTransition(from, to State) bool {
	switch from {
	case StateConfigured:
		return to == StateReady
	case StateReady:
		return to == StateExecuted
	case StateExecuted:
		// Re-execution re-enters Ready for a fresh read of all inputs.
		return to == StateReady
	default:
		return false
	}
}
