package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/game"
)

// summaryColumns are the end-screen table columns.
func summaryColumns(width int) []table.Column {
	columns := []table.Column{
		{Title: "Level", Width: 20},
		{Title: "Result", Width: 8},
		{Title: "Score", Width: 7},
		{Title: "Time", Width: 7},
		{Title: "Enemies", Width: 8},
	}
	// Give the level column whatever the terminal has to spare.
	fixed := 0
	for _, c := range columns[1:] {
		fixed += c.Width + 2
	}
	if avail := width - 8 - fixed; avail > columns[0].Width {
		columns[0].Width = min(avail, 32)
	}
	return columns
}

// summaryRows converts the end-screen summary to table rows.
func summaryRows(rows []game.SummaryRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		if r.Result == nil {
			out = append(out, table.Row{r.Title, "-", "-", "-", "-"})
			continue
		}
		result := "failed"
		if r.Result.Won {
			result = "won"
		}
		out = append(out, table.Row{
			r.Title,
			result,
			fmt.Sprintf("%d", r.Result.Score),
			fmt.Sprintf("%.0fs", r.Result.TimeToCompleteSec),
			fmt.Sprintf("%d", r.Result.EnemiesDestroyed),
		})
	}
	return out
}

// newSummaryTable builds the end-screen table.
func newSummaryTable(rows []game.SummaryRow, width, height int) table.Model {
	t := table.New(
		table.WithColumns(summaryColumns(width)),
		table.WithRows(summaryRows(rows)),
		table.WithFocused(true),
		table.WithHeight(core.Max(min(len(rows)+1, height-10), 2)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// renderEndScreen lays out the title, the summary table and the totals.
func renderEndScreen(title string, t table.Model, total, best, width int) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("GAME OVER - "+title, width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(t.View()))
	b.WriteString("\n\n")

	totals := fmt.Sprintf("Total score: %d", total)
	if best > 0 {
		totals += fmt.Sprintf("   Best: %d", best)
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(totals))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
		Render("r: play again   q: quit"))
	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
