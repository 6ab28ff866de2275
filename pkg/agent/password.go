package agent

import (
	"bytes"
	"encoding/json"
	"strings"
)

const msgEmptyPassword = "Error: Password cannot be empty."

// CleanPassword reduces the forms a model tends to emit (bare value, key=value,
// quoted, single-key JSON object) to the bare secret.
func CleanPassword(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	if v, ok := firstJSONValue(s); ok {
		s = v
	} else if i := strings.LastIndex(s, "="); i >= 0 {
		s = s[i+1:]
	}

	s = strings.TrimSpace(s)
	s = strings.Trim(s, `'"`)
	s = strings.TrimSpace(s)

	if s == "" {
		return "", &ToolInputError{Tool: ToolChangePassword, Message: msgEmptyPassword}
	}
	return s, nil
}

// firstJSONValue returns the first value of a JSON object in document order.
// Non-string values are returned as their JSON text.
func firstJSONValue(s string) (string, bool) {
	if !strings.HasPrefix(s, "{") || !json.Valid([]byte(s)) {
		return "", false
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	if _, err := dec.Token(); err != nil { // opening brace
		return "", false
	}
	if !dec.More() {
		return "", false
	}
	if _, err := dec.Token(); err != nil { // first key
		return "", false
	}

	var value json.RawMessage
	if err := dec.Decode(&value); err != nil {
		return "", false
	}

	var str string
	if err := json.Unmarshal(value, &str); err == nil {
		return str, true
	}
	return string(value), true
}
