package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bannerStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// table renders rows under headers with columns padded to their widest cell.
type table struct {
	headers []string
	rows    [][]string
	// banner marks rows drawn as a single centred cell spanning all columns.
	banner map[int]bool
	// dim marks rows drawn in the done style.
	dim map[int]bool
}

func newTable(headers ...string) *table {
	return &table{headers: headers, banner: map[int]bool{}, dim: map[int]bool{}}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) addDim(cells ...string) {
	t.dim[len(t.rows)] = true
	t.add(cells...)
}

func (t *table) addBanner(text string) {
	t.banner[len(t.rows)] = true
	t.add(text)
}

func (t *table) render(w io.Writer) {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for i, row := range t.rows {
		if t.banner[i] {
			continue
		}
		for j, cell := range row {
			if j < len(widths) && lipgloss.Width(cell) > widths[j] {
				widths[j] = lipgloss.Width(cell)
			}
		}
	}
	total := 0
	for _, wd := range widths {
		total += wd
	}
	total += 2 * (len(widths) - 1)
	for i, row := range t.rows {
		if t.banner[i] && lipgloss.Width(row[0]) > total {
			total = lipgloss.Width(row[0])
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(widths))
		for j := range widths {
			cell := ""
			if j < len(cells) {
				cell = cells[j]
			}
			parts[j] = style.Width(widths[j]).Render(cell)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	fmt.Fprintln(w, line(t.headers, headerStyle))
	for i, row := range t.rows {
		switch {
		case t.banner[i]:
			fmt.Fprintln(w, bannerStyle.Width(total).Align(lipgloss.Center).Render(row[0]))
		case t.dim[i]:
			fmt.Fprintln(w, line(row, doneStyle))
		default:
			fmt.Fprintln(w, line(row, lipgloss.NewStyle()))
		}
	}
}

func title(w io.Writer, s string) {
	fmt.Fprintln(w, titleStyle.Render(s))
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// truncate shortens s to n display cells.
func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
