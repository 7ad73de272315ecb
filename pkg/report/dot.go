package report

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/licenseaudit/pkg/audit"
	"github.com/matzehuels/licenseaudit/pkg/deps"
)

// ToDOT converts a report to a Graphviz digraph. Repositories are boxes on
// the left, dependencies are ellipses labelled "<name>\n<license>", and an
// edge links each repository to every dependency it declares.
//
// Dependencies whose license is a placeholder are drawn dashed.
func ToDOT(r *audit.Report) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	for _, repo := range repositories(r) {
		fmt.Fprintf(&buf, "  %s [shape=box, style=\"rounded,filled\", fillcolor=lightblue];\n", dotQuote(repoID(repo)))
	}
	buf.WriteString("\n")
	for _, e := range r.Entries {
		attrs := "shape=ellipse, label=" + dotQuote(e.Name+"\n"+e.License)
		if isPlaceholder(e.License) {
			attrs += ", style=dashed"
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", dotQuote(e.Key), attrs)
	}
	buf.WriteString("\n")
	for _, e := range r.Entries {
		for _, repo := range e.Repositories {
			fmt.Fprintf(&buf, "  %s -> %s;\n", dotQuote(repoID(repo)), dotQuote(e.Key))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

// dotQuote returns s as a DOT double-quoted ID. Only backslashes, quotes
// and line breaks are escaped; other text, including non-ASCII, is kept
// as is.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// repositories returns the scanned repositories, or those referenced by
// entries when the report was built by hand.
func repositories(r *audit.Report) []string {
	if len(r.Repositories) > 0 {
		return r.Repositories
	}
	seen := make(map[string]bool)
	var out []string
	for _, e := range r.Entries {
		for _, repo := range e.Repositories {
			if !seen[repo] {
				seen[repo] = true
				out = append(out, repo)
			}
		}
	}
	return out
}

// repoID keeps repository nodes distinct from dependency keys.
func repoID(repo string) string { return repo + "/" }

func isPlaceholder(license string) bool {
	return license == deps.LicenseNotFound || license == deps.LicenseNotSpecified
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root <svg> tag so the drawing scales from
// its viewBox instead of Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
