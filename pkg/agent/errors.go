package agent

import (
	"errors"
	"fmt"
)

// ErrParseRetriesExhausted is returned when the model keeps producing output the parser rejects.
var ErrParseRetriesExhausted = errors.New("agent: parse retries exhausted")

// ParseError means the model output did not follow the Thought/Action/Final Answer grammar.
// Observation is what gets fed back to the model on retry.
type ParseError struct {
	Observation string
	Output      string
}

func (e *ParseError) Error() string {
	return "could not parse model output: " + e.Observation
}

// ToolInputError is a malformed tool input. Its message is returned to the model verbatim.
type ToolInputError struct {
	Tool    ToolName
	Message string
}

func (e *ToolInputError) Error() string {
	return e.Message
}

// BackendError wraps a failure of the model or of a tool's backing store.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("agent backend %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
