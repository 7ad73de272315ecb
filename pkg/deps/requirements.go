package deps

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Requirement is one name → version constraint entry of a manifest.
type Requirement struct {
	Name       string
	Constraint string
}

// Requirements is a manifest dependency mapping that keeps declaration
// order. It decodes from a JSON object; a repeated key keeps its first
// position and its last value.
type Requirements []Requirement

// UnmarshalJSON decodes a JSON object in document order.
func (r *Requirements) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*r = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("requirements: expected object, got %v", tok)
	}

	var out Requirements
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		req := Requirement{Name: name, Constraint: constraintText(raw)}
		if i, ok := index[name]; ok {
			out[i] = req
			continue
		}
		index[name] = len(out)
		out = append(out, req)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}

// constraintText returns the string value of raw, or its compact JSON when
// the manifest uses a non-string constraint.
func constraintText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var buf bytes.Buffer
	if json.Compact(&buf, raw) == nil {
		return buf.String()
	}
	return string(raw)
}
