package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openclaw/yta/internal/collector"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(18)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// renderSummary formats a run summary for humans. The default output is
// one JSON line; this is behind --pretty.
func renderSummary(s collector.Summary) string {
	lines := []string{
		headerStyle.Render("yta collection summary"),
		row("channel", s.ChannelID),
		row("videos", fmt.Sprintf("%d", s.Videos)),
		row("stat rows", fmt.Sprintf("%d", s.StatRowsUpserted)),
		row("range", fmt.Sprintf("%s .. %s (%s)", s.Range.Start, s.Range.End, s.Range.Mode)),
		row("views", fmt.Sprintf("%d", s.PeriodTotals.Views)),
		row("likes", fmt.Sprintf("%d", s.PeriodTotals.Likes)),
		row("comments", fmt.Sprintf("%d", s.PeriodTotals.Comments)),
		row("minutes watched", fmt.Sprintf("%d", s.PeriodTotals.EstimatedMinutesWatched)),
		row("net subscribers", fmt.Sprintf("%+d", s.PeriodTotals.NetSubscribers)),
	}
	if s.LifetimeTotals != nil {
		lines = append(lines, row("lifetime", fmt.Sprintf("views=%d likes=%d comments=%d",
			s.LifetimeTotals.Views, s.LifetimeTotals.Likes, s.LifetimeTotals.Comments)))
	}
	lines = append(lines, row("database", s.DBPath))

	return boxStyle.Render(strings.Join(lines, "\n"))
}
