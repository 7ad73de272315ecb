package report

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/licenseaudit/pkg/audit"
)

// Header is the first line of the text format.
const Header = "Production dependencies and the repositories where they are used:"

// WriteText writes the header followed by one line per entry:
//
//	left-pad (WTFPL): repo1, repo2
func WriteText(w io.Writer, r *audit.Report) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(Header)
	bw.WriteByte('\n')
	for _, e := range r.Entries {
		bw.WriteString(e.Key)
		bw.WriteString(": ")
		bw.WriteString(strings.Join(e.Repositories, ", "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
