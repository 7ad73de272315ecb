package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/matzehuels/licenseaudit/pkg/audit"
)

type document struct {
	RunID        string          `json:"run_id"`
	Root         string          `json:"root"`
	StartedAt    time.Time       `json:"started_at"`
	DurationMS   int64           `json:"duration_ms"`
	Repositories []string        `json:"repositories"`
	Entries      []audit.Entry   `json:"entries"`
	Failures     []audit.Failure `json:"failures"`
}

// WriteJSON encodes r as indented JSON. Entries keep report order.
func WriteJSON(w io.Writer, r *audit.Report) error {
	doc := document{
		RunID:        r.RunID.String(),
		Root:         r.Root,
		StartedAt:    r.StartedAt.UTC(),
		DurationMS:   r.Duration.Milliseconds(),
		Repositories: nonNil(r.Repositories),
		Entries:      r.Entries,
		Failures:     r.Failures,
	}
	if doc.Entries == nil {
		doc.Entries = []audit.Entry{}
	}
	if doc.Failures == nil {
		doc.Failures = []audit.Failure{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
