package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/licenseaudit/pkg/audit"
	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
)

func sampleReport() *audit.Report {
	return &audit.Report{
		RunID:        uuid.MustParse("0b6f7a52-3b1c-4c57-9a55-5d2f0f6f9f1e"),
		Root:         "/srv/repos",
		StartedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Duration:     1500 * time.Millisecond,
		Repositories: []string{"repo1", "repo2"},
		Entries: []audit.Entry{
			{Key: "left-pad (WTFPL)", Name: "left-pad", License: "WTFPL", Repositories: []string{"repo1", "repo2"}},
			{Key: "ghost (License not found)", Name: "ghost", License: "License not found", Repositories: []string{"repo2"}},
		},
		Failures: []audit.Failure{
			{Repository: "repo2", Ecosystem: "javascript", Dependency: "flaky", Code: lerrors.ErrCodeNetwork, Message: "network error"},
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}
	want := "Production dependencies and the repositories where they are used:\n" +
		"left-pad (WTFPL): repo1, repo2\n" +
		"ghost (License not found): repo2\n"
	if buf.String() != want {
		t.Errorf("WriteText() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, &audit.Report{}); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}
	if buf.String() != Header+"\n" {
		t.Errorf("WriteText() = %q, want header only", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var doc struct {
		RunID      string          `json:"run_id"`
		DurationMS int64           `json:"duration_ms"`
		Entries    []audit.Entry   `json:"entries"`
		Failures   []audit.Failure `json:"failures"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc.RunID != "0b6f7a52-3b1c-4c57-9a55-5d2f0f6f9f1e" {
		t.Errorf("run_id = %q", doc.RunID)
	}
	if doc.DurationMS != 1500 {
		t.Errorf("duration_ms = %d, want 1500", doc.DurationMS)
	}
	if len(doc.Entries) != 2 || doc.Entries[0].Key != "left-pad (WTFPL)" {
		t.Errorf("entries = %+v", doc.Entries)
	}
	if len(doc.Failures) != 1 || doc.Failures[0].Code != lerrors.ErrCodeNetwork {
		t.Errorf("failures = %+v", doc.Failures)
	}
}

func TestWriteJSONEmptyLists(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, &audit.Report{}); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	for _, field := range []string{`"entries": []`, `"failures": []`, `"repositories": []`} {
		if !strings.Contains(buf.String(), field) {
			t.Errorf("output missing %s:\n%s", field, buf.String())
		}
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleReport())

	for _, want := range []string{
		"digraph G {",
		`"repo1/" [shape=box`,
		`"left-pad (WTFPL)" [shape=ellipse, label="left-pad\nWTFPL"]`,
		`"ghost (License not found)" [shape=ellipse, label="ghost\nLicense not found", style=dashed]`,
		`"repo1/" -> "left-pad (WTFPL)";`,
		`"repo2/" -> "left-pad (WTFPL)";`,
		`"repo2/" -> "ghost (License not found)";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"repo1/" -> "ghost`) {
		t.Error("ToDOT() should only link declaring repositories")
	}
}

func TestToDOTWithoutRepositoryList(t *testing.T) {
	r := sampleReport()
	r.Repositories = nil
	dot := ToDOT(r)
	if !strings.Contains(dot, `"repo1/" [shape=box`) || !strings.Contains(dot, `"repo2/" [shape=box`) {
		t.Errorf("repositories should be derived from entries:\n%s", dot)
	}
}

func TestToDOTEscaping(t *testing.T) {
	r := &audit.Report{
		Repositories: []string{"dépôt"},
		Entries: []audit.Entry{{
			Key:          `café "lib" (MIT\GPL)`,
			Name:         `café "lib"`,
			License:      `MIT\GPL`,
			Repositories: []string{"dépôt"},
		}},
	}
	dot := ToDOT(r)

	for _, want := range []string{
		`"dépôt/" [shape=box`,
		`"café \"lib\" (MIT\\GPL)" [shape=ellipse, label="café \"lib\"\nMIT\\GPL"]`,
		`"dépôt/" -> "café \"lib\" (MIT\\GPL)";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `\u00`) || strings.Contains(dot, `\x`) {
		t.Errorf("ToDOT() should keep non-ASCII text unescaped:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleReport()))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("RenderSVG() output is not SVG")
	}
	if !bytes.Contains(svg, []byte("left-pad")) {
		t.Error("RenderSVG() output missing node label")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG() should fail on invalid DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("normalizeViewBox() without viewBox = %s, want unchanged", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" dot ", FormatDOT, false},
		{"svg", FormatSVG, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !lerrors.Is(err, lerrors.ErrCodeInvalidFormat) {
			t.Errorf("ParseFormat(%q) error code = %s, want INVALID_FORMAT", tt.in, lerrors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"report.json", FormatJSON},
		{"graph.svg", FormatSVG},
		{"graph.gv", FormatDOT},
		{"graph.DOT", FormatDOT},
		{"licenses.txt", FormatText},
		{"noext", FormatText},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path, FormatText); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := Export(context.Background(), path, sampleReport(), FormatText); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), Header) {
		t.Errorf("exported file = %q", data)
	}

	if err := Export(context.Background(), filepath.Join(t.TempDir(), "missing", "out.txt"), sampleReport(), FormatText); err == nil {
		t.Error("Export() should fail when the directory does not exist")
	}
}

func ExampleWriteText() {
	r := &audit.Report{Entries: []audit.Entry{
		{Key: "left-pad (WTFPL)", Repositories: []string{"repo1", "repo2"}},
	}}
	WriteText(os.Stdout, r)
	// Output:
	// Production dependencies and the repositories where they are used:
	// left-pad (WTFPL): repo1, repo2
}
