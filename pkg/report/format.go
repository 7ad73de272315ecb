package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/licenseaudit/pkg/audit"
	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
)

// Format is an output format name.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatText, FormatJSON, FormatDOT, FormatSVG}

// ParseFormat returns the Format named s (case-insensitive). An empty
// string selects [FormatText].
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatText, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", lerrors.New(lerrors.ErrCodeInvalidFormat, "unknown format %q (want one of %s)", s, formatList())
}

// FormatFromPath infers a format from an output file extension, falling
// back to def.
func FormatFromPath(path string, def Format) Format {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return def
	}
	if f, err := ParseFormat(path[i+1:]); err == nil {
		return f
	}
	if strings.EqualFold(path[i+1:], "gv") {
		return FormatDOT
	}
	return def
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Write encodes r to w in format f.
func Write(ctx context.Context, w io.Writer, r *audit.Report, f Format) error {
	switch f {
	case FormatText, "":
		return WriteText(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatDOT:
		_, err := io.WriteString(w, ToDOT(r))
		return err
	case FormatSVG:
		svg, err := RenderSVG(ctx, ToDOT(r))
		if err != nil {
			return err
		}
		_, err = w.Write(svg)
		return err
	}
	return lerrors.New(lerrors.ErrCodeInvalidFormat, "unknown format %q", f)
}

// Export writes r to the file at path in format f.
func Export(ctx context.Context, path string, r *audit.Report, f Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(ctx, file, r, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
