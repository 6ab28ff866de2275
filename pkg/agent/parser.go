package agent

import (
	"regexp"
	"strings"
)

const (
	finalAnswerMarker = "Final Answer:"
	stopSequence      = "\nObservation"

	msgMissingAction      = "Invalid Format: Missing 'Action:' after 'Thought:'"
	msgMissingActionInput = "Invalid Format: Missing 'Action Input:' after 'Action:'"
	msgActionAndAnswer    = "Parsing LLM output produced both a final answer and a parse-able action."
	msgEmptyFinalAnswer   = "Invalid Format: 'Final Answer:' must be followed by the answer."
)

var (
	actionPattern      = regexp.MustCompile(`(?s)Action\s*\d*\s*:[\s]*(.*?)[\s]*Action\s*\d*\s*Input\s*\d*\s*:[\s]*(.*)`)
	actionOnlyPattern  = regexp.MustCompile(`(?s)Action\s*\d*\s*:[\s]*(.*?)`)
	actionInputPattern = regexp.MustCompile(`(?s)[\s]*Action\s*\d*\s*Input\s*\d*\s*:[\s]*(.*)`)
)

// Decision is a successfully parsed model turn: either a final answer or one tool call.
type Decision struct {
	Thought string
	Final   bool
	Answer  string
	Tool    ToolName
	Input   string
	Log     string
}

// Parse validates one model turn against the ReAct grammar. Anything after a stop
// marker is discarded; the model does not get to write its own observations.
func Parse(output string, allowed []ToolName) (*Decision, error) {
	text := output
	if i := strings.Index(text, stopSequence); i >= 0 {
		text = text[:i]
	}

	hasFinal := strings.Contains(text, finalAnswerMarker)

	if m := actionPattern.FindStringSubmatch(text); m != nil {
		if hasFinal {
			return nil, &ParseError{Observation: msgActionAndAnswer, Output: text}
		}
		name := ToolName(strings.TrimSpace(m[1]))
		if !containsTool(allowed, name) {
			return nil, &ParseError{Observation: invalidToolMessage(name, allowed), Output: text}
		}
		input := strings.Trim(strings.TrimSpace(m[2]), `"`)
		return &Decision{
			Thought: thoughtOf(text, actionPattern.FindStringIndex(text)[0]),
			Tool:    name,
			Input:   input,
			Log:     text,
		}, nil
	}

	if hasFinal {
		i := strings.LastIndex(text, finalAnswerMarker)
		answer := strings.TrimSpace(text[i+len(finalAnswerMarker):])
		if answer == "" {
			return nil, &ParseError{Observation: msgEmptyFinalAnswer, Output: text}
		}
		return &Decision{
			Thought: thoughtOf(text, strings.Index(text, finalAnswerMarker)),
			Final:   true,
			Answer:  answer,
			Log:     text,
		}, nil
	}

	if !actionOnlyPattern.MatchString(text) {
		return nil, &ParseError{Observation: msgMissingAction, Output: text}
	}
	if !actionInputPattern.MatchString(text) {
		return nil, &ParseError{Observation: msgMissingActionInput, Output: text}
	}
	return nil, &ParseError{Observation: "Could not parse LLM output: `" + text + "`", Output: text}
}

func thoughtOf(text string, end int) string {
	t := strings.TrimSpace(text[:end])
	return strings.TrimSpace(strings.TrimPrefix(t, "Thought:"))
}

func containsTool(allowed []ToolName, name ToolName) bool {
	for _, a := range allowed {
		if a == name {
			return true
		}
	}
	return false
}

func invalidToolMessage(name ToolName, allowed []ToolName) string {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return string(name) + " is not a valid tool, try one of [" + strings.Join(names, ", ") + "]."
}
