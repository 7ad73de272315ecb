package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/licenseaudit/pkg/audit"
	"github.com/matzehuels/licenseaudit/pkg/deps"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// maxRepoColumn is the widest the repositories column may render.
const maxRepoColumn = 48

// =============================================================================
// EntryListModel - Interactive report browser
// =============================================================================

// EntryListModel is the bubbletea model for browsing report entries.
// Enter opens the repositories of the selected entry; esc returns.
type EntryListModel struct {
	Entries []audit.Entry
	Cursor  int
	Height  int
	Offset  int
	Detail  bool
}

// NewEntryListModel creates a new entry list model.
func NewEntryListModel(entries []audit.Entry) EntryListModel {
	return EntryListModel{
		Entries: entries,
		Height:  15,
	}
}

func (m EntryListModel) Init() tea.Cmd {
	return nil
}

func (m EntryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Detail {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc", "enter", "backspace":
				m.Detail = false
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Entries) > 0 {
				m.Detail = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m EntryListModel) View() string {
	if m.Detail && len(m.Entries) > 0 {
		return m.detailView()
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render("Dependency Licenses"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ repositories  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			e.Name,
			e.License,
			fmt.Sprintf("%d", len(e.Repositories)),
			truncate(strings.Join(e.Repositories, ", "), maxRepoColumn),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Dependency", "License", "Repos", "Repositories").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}

			idx := m.Offset + row
			if idx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			isCurrent := idx == m.Cursor
			placeholder := isPlaceholderLicense(m.Entries[idx].License)

			base := lipgloss.NewStyle()
			switch {
			case col == 2 && placeholder:
				base = base.Foreground(colorYellow)
			case col == 3 || col == 4:
				base = base.Foreground(colorDim)
				if isCurrent {
					base = base.Foreground(colorGray)
				}
			case isCurrent:
				base = base.Foreground(colorGreen)
			}
			if isCurrent {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

func (m EntryListModel) detailView() string {
	e := m.Entries[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(e.Name))
	b.WriteString("  ")
	if isPlaceholderLicense(e.License) {
		b.WriteString(StyleWarning.Render(e.License))
	} else {
		b.WriteString(StyleSuccess.Render(e.License))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("⏎/esc back  q quit"))
	b.WriteString("\n\n")

	for _, repo := range e.Repositories {
		b.WriteString("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(repo) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s", plural(len(e.Repositories), "repository", "repositories"))))
	return b.String()
}

// browseReport runs the interactive browser over the report entries.
func browseReport(ctx context.Context, rep *audit.Report) error {
	if len(rep.Entries) == 0 {
		printInfo("No dependencies found")
		return nil
	}

	p := tea.NewProgram(NewEntryListModel(rep.Entries), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

func isPlaceholderLicense(license string) bool {
	return license == deps.LicenseNotFound || license == deps.LicenseNotSpecified
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
