package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// maxDescription truncates descriptions in table cells.
const maxDescription = 48

var (
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

func writeTable(w io.Writer, rows []Row) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(Header...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
	for _, r := range rows {
		rec := r.Record()
		rec[5] = truncate(rec[5], maxDescription)
		t.Row(rec...)
	}
	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
