package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/matzehuels/heft/pkg/walk"
)

// List styles
var (
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	listPreviewStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Foreground(colorGray).
				Padding(0, 1)
)

const previewLines = 20

// errNotTerminal is returned by browse when stdin or stdout is redirected.
var errNotTerminal = errors.New("--interactive requires a terminal")

// browse shows the report in a terminal UI until the user quits.
func browse(r *walk.Report) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}
	_, err := tea.NewProgram(NewFileListModel(r), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// FileListModel - Interactive report browser
// =============================================================================

// FileListModel is the bubbletea model listing the files of a report,
// heaviest first.
type FileListModel struct {
	Report  *walk.Report
	Files   []*walk.FileRecord
	Cursor  int
	Offset  int
	Height  int
	Preview bool
}

// NewFileListModel creates a list model for r.
func NewFileListModel(r *walk.Report) FileListModel {
	files := slices.Clone(r.Files)
	slices.SortStableFunc(files, func(a, b *walk.FileRecord) int {
		return b.Size - a.Size
	})
	return FileListModel{
		Report: r,
		Files:  files,
		Height: 15,
	}
}

func (m FileListModel) Init() tea.Cmd {
	return nil
}

func (m FileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
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
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Preview = !m.Preview
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Preview {
			m.Height -= previewLines + 2
		}
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("heft " + m.Report.Root))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ source  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Files))
	base := filepath.Dir(m.Report.Root)

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Files[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			relPath(base, f.Path),
			strconv.Itoa(f.Size),
			strconv.Itoa(f.Length),
			share(f.Size, m.Report.TotalSize),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", "Size", "Length", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			style := lipgloss.NewStyle()
			if col >= 2 {
				style = style.Align(lipgloss.Right)
			}
			if m.Offset+row == m.Cursor {
				return style.Foreground(colorCyan).Bold(true)
			}
			return style.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  total %d bytes, %d chars",
		m.Cursor+1, len(m.Files), m.Report.TotalSize, m.Report.TotalLength)))

	if m.Preview && len(m.Files) > 0 {
		b.WriteString("\n")
		b.WriteString(listPreviewStyle.Render(head(m.Files[m.Cursor].Source, previewLines)))
	}
	return b.String()
}

// share formats part as a percentage of total.
func share(part, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(total))
}

// head returns the first n lines of s.
func head(s string, n int) string {
	lines := strings.SplitN(s, "\n", n+1)
	if len(lines) > n {
		lines = append(lines[:n], "…")
	}
	return strings.Join(lines, "\n")
}
