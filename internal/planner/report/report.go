// Package report renders farming plans for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

var (
	accent = lipgloss.Color("#8BC34A")
	danger = lipgloss.Color("#e53935")
	muted  = lipgloss.Color("#6b7280")
)

// Styles used by the report.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Muted   lipgloss.Style
	Blocked lipgloss.Style
	Done    lipgloss.Style
}

// DefaultStyles returns the standard report styles.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Label:   lipgloss.NewStyle().Foreground(muted).Width(18),
		Value:   lipgloss.NewStyle().Bold(true),
		Header:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:    lipgloss.NewStyle().Padding(0, 1),
		Muted:   lipgloss.NewStyle().Foreground(muted),
		Blocked: lipgloss.NewStyle().Foreground(danger).Bold(true),
		Done:    lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
	}
}

// Render writes the plan summary, per-material breakdown and today's raids.
// A positive dailyEnergy adds the plan's share of the player's daily energy
// to the summary.
func Render(w io.Writer, plan *tacticus.EstimatedShards, dailyEnergy int) error {
	return RenderWithStyles(w, plan, dailyEnergy, DefaultStyles())
}

// RenderWithStyles is Render with caller-provided styles.
func RenderWithStyles(w io.Writer, plan *tacticus.EstimatedShards, dailyEnergy int, styles Styles) error {
	if plan == nil {
		return fmt.Errorf("no plan to render")
	}

	var sb strings.Builder
	sb.WriteString(summary(plan, dailyEnergy, styles))
	sb.WriteString("\n")
	sb.WriteString(materials(plan.Materials, styles))
	sb.WriteString(todayRaids(plan.ShardsRaids, styles))

	_, err := io.WriteString(w, sb.String())
	return err
}

func summary(plan *tacticus.EstimatedShards, dailyEnergy int, styles Styles) string {
	rows := [][2]string{
		{"Days", humanize.Comma(int64(plan.DaysTotal))},
		{"Energy", humanize.CommafWithDigits(plan.EnergyTotal, 0)},
		{"Energy per day", humanize.CommafWithDigits(plan.EnergyPerDay, 1)},
	}
	if dailyEnergy > 0 {
		share := 100 * plan.EnergyPerDay / float64(dailyEnergy)
		value := fmt.Sprintf("%s%% of %s", humanize.CommafWithDigits(share, 0), humanize.Comma(int64(dailyEnergy)))
		if share > 100 {
			value = styles.Blocked.Render(value)
		}
		rows = append(rows, [2]string{"Daily energy", value})
	}
	rows = append(rows,
		[2]string{"Raids", humanize.Comma(int64(plan.RaidsTotal))},
		[2]string{"Onslaught tokens", humanize.Comma(int64(plan.OnslaughtTokens))},
	)

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Shards farming plan"))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(styles.Label.Render(row[0]))
		sb.WriteString(styles.Value.Render(row[1]))
		sb.WriteString("\n")
	}
	return sb.String()
}

func materials(estimates []tacticus.ShardEstimate, styles Styles) string {
	if len(estimates) == 0 {
		return styles.Muted.Render("No goals need shards.") + "\n"
	}

	t := newTable("Goals", "Goal", "Shards", "Days", "Energy", "Raids", "Tokens", "Locations")
	for _, m := range estimates {
		locations := fmt.Sprintf("%d of %d unlocked", len(m.UnlockedLocations), len(m.PossibleLocations))
		if m.IsBlocked {
			locations = styles.Blocked.Render("blocked")
		}
		t.addRow(
			m.Label,
			fmt.Sprintf("%d/%d", m.AcquiredCount, m.RequiredCount),
			humanize.Comma(int64(m.DaysTotal)),
			humanize.CommafWithDigits(m.EnergyTotal, 0),
			humanize.Comma(int64(m.RaidsTotal)),
			humanize.Comma(int64(m.OnslaughtTokensTotal)),
			locations,
		)
	}
	return t.render(styles)
}

func todayRaids(raids []tacticus.ShardsRaid, styles Styles) string {
	if len(raids) == 0 {
		return ""
	}

	t := newTable("Today", "Goal", "Location", "Raids", "Shards", "Energy")
	for _, r := range raids {
		label := r.Label
		if r.IsCompleted {
			label = styles.Done.Render(label)
		}
		for _, loc := range r.Locations {
			row := []string{
				label,
				loc.ID,
				humanize.Comma(int64(loc.RaidsCount)),
				humanize.CommafWithDigits(loc.FarmedItems, 2),
				humanize.CommafWithDigits(loc.EnergySpent, 0),
			}
			if loc.IsCompleted {
				for i := 1; i < len(row); i++ {
					row[i] = styles.Done.Render(row[i])
				}
			}
			t.addRow(row...)
			label = ""
		}
	}
	return t.render(styles)
}

type table struct {
	title   string
	headers []string
	rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{title: title, headers: headers}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(styles Styles) string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	total := len(widths) - 1
	for i := range widths {
		// Padding(0, 1) is counted in Width.
		widths[i] += 2
		total += widths[i]
	}

	sep := styles.Muted.Render("|")

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(t.title))
	sb.WriteString("\n")
	for i, h := range t.headers {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(styles.Header.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				sb.WriteString(sep)
			}
			sb.WriteString(styles.Cell.Width(widths[i]).Render(cell))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}
