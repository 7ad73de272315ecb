package deps

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Placeholder licenses substituted when no real value is available.
const (
	// LicenseNotFound is used when a registry lookup failed or the
	// registry response carries no license.
	LicenseNotFound = "License not found"
	// LicenseNotSpecified is used when a lock file entry has no license.
	LicenseNotSpecified = "No license specified"
)

// License is a license value as declared by a manifest, lock file or
// registry. The raw JSON is preserved; registries encode licenses as a
// string ("MIT"), a list (["MIT", "GPL-2.0-or-later"]) or, for legacy npm
// packages, an object ({"type": "MIT", "url": ...}).
//
// The zero value is an absent license.
type License struct {
	raw json.RawMessage
}

// NewLicense returns a License holding the string s.
func NewLicense(s string) License {
	b, _ := json.Marshal(s)
	return License{raw: b}
}

// LicenseFromJSON returns a License holding raw JSON. Invalid JSON yields
// an absent license.
func LicenseFromJSON(raw []byte) License {
	if !json.Valid(raw) {
		return License{}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return License{}
	}
	return License{raw: buf.Bytes()}
}

// UnmarshalJSON stores the raw value. null leaves the license absent.
func (l *License) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	*l = LicenseFromJSON(b)
	return nil
}

// MarshalJSON returns the raw value, or null for an absent license.
func (l License) MarshalJSON() ([]byte, error) {
	if len(l.raw) == 0 {
		return []byte("null"), nil
	}
	return l.raw, nil
}

// Raw returns the compact JSON encoding of the license, or nil.
func (l License) Raw() json.RawMessage { return l.raw }

// IsZero reports whether the license is absent: missing, null, an empty
// or blank string, an empty list or an empty object.
func (l License) IsZero() bool {
	if len(l.raw) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(l.raw, &v); err != nil {
		return true
	}
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}

// String renders the license for display. Strings are returned as-is,
// lists are joined with ", " and anything else is shown as compact JSON.
// An absent license renders as the empty string.
func (l License) String() string {
	if l.IsZero() {
		return ""
	}
	var s string
	if json.Unmarshal(l.raw, &s) == nil {
		return s
	}
	var list []json.RawMessage
	if json.Unmarshal(l.raw, &list) == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, LicenseFromJSON(item).String())
		}
		return strings.Join(parts, ", ")
	}
	return string(l.raw)
}

// Or returns the rendered license, or placeholder when it is absent.
func (l License) Or(placeholder string) string {
	if l.IsZero() {
		return placeholder
	}
	return l.String()
}
