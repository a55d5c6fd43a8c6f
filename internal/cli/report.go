package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/heft/pkg/walk"
)

// printReport writes one section per file followed by the totals:
//
//	/proj/src/a.ts
//
//	Source code:
//
//	<source, dimmed>
//
//	Size:   123 bytes
//	Length: 456
func printReport(w io.Writer, r *walk.Report, showSource bool) {
	for _, f := range r.Files {
		fmt.Fprintln(w, StyleValue.Render(f.Path))
		fmt.Fprintln(w)
		if showSource {
			fmt.Fprintln(w, "Source code:")
			fmt.Fprintln(w)
			fmt.Fprintln(w, dimSource(strings.TrimRight(f.Source, "\n")))
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Size:   %s bytes\n", StyleNumber.Render(strconv.Itoa(f.Size)))
		fmt.Fprintf(w, "Length: %s\n", StyleNumber.Render(strconv.Itoa(f.Length)))
		if len(f.Externals) > 0 {
			fmt.Fprintf(w, "External: %s\n", StyleDim.Render(strings.Join(f.Externals, ", ")))
		}
		fmt.Fprintln(w)
	}
	printTotals(w, r)
}

// dimSource styles each line on its own so the dump keeps the source's
// whitespace: a multi-line Render would pad lines to a common width.
func dimSource(src string) string {
	style := StyleDim.TabWidth(lipgloss.NoTabConversion)
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

// printTotals writes the aggregate lines. Total size and total length are
// always reported separately.
func printTotals(w io.Writer, r *walk.Report) {
	fmt.Fprintf(w, "Total size:   %s bytes\n", StyleNumber.Render(strconv.Itoa(r.TotalSize)))
	fmt.Fprintf(w, "Total length: %s\n", StyleNumber.Render(strconv.Itoa(r.TotalLength)))
	if r.BundledSize > 0 {
		fmt.Fprintf(w, "Bundled size: %s bytes\n", StyleNumber.Render(strconv.Itoa(r.BundledSize)))
	}
	if len(r.Externals) > 0 {
		fmt.Fprintf(w, "External:     %s\n", StyleDim.Render(strings.Join(r.Externals, ", ")))
	}
}

// printTable writes a bordered summary with one row per file.
func printTable(w io.Writer, r *walk.Report) {
	base := filepath.Dir(r.Root)
	rows := make([][]string, 0, len(r.Files))
	for _, f := range r.Files {
		rows = append(rows, []string{
			relPath(base, f.Path),
			strconv.Itoa(f.Size),
			strconv.Itoa(f.Length),
			strconv.Itoa(len(f.Deps)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("File", "Size", "Length", "Imports").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle
			}
			if col > 0 {
				return lipgloss.NewStyle().Align(lipgloss.Right)
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, t.Render())
}

// relPath shortens path relative to base when it lies inside it.
func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
