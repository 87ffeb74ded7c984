package tui

import (
	"fmt"
	"strings"

	"github.com/de-tools/aurascale/pkg/dashboard"
	"github.com/rivo/tview"
)

const (
	trendBarWidth = 30
	loadingText   = "Initializing AuraScale"
)

var kindIcons = map[dashboard.Kind]string{
	dashboard.KindDatabase: "⛁",
	dashboard.KindStorage:  "▤",
	dashboard.KindService:  "⚡",
}

func headerText(snap dashboard.Snapshot) string {
	title := "[::b]AuraScale[::-] Cloud Cost Dashboard"
	switch {
	case snap.Loading:
		return title + "  [yellow]refreshing...[-]"
	case snap.LastError != nil:
		return title + "  [red]" + tview.Escape(snap.LastError.Error()) + "[-]"
	case !snap.UpdatedAt.IsZero():
		return title + "  [gray]updated " + snap.UpdatedAt.Format("15:04:05") + "[-]"
	default:
		return title
	}
}

func summaryText(snap dashboard.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Monthly Spend\n[red::b]%s[-::-]\n\n", dashboard.FormatMoney(snap.Total))
	fmt.Fprintf(&b, "Resources: %d\n", len(snap.Resources))
	if snap.Query != "" {
		fmt.Fprintf(&b, "Matching:  %d\n", len(snap.Visible))
	}
	return b.String()
}

func trendText(points []dashboard.TrendPoint) string {
	var maxCents int64
	for _, p := range points {
		if p.Amount.Cents > maxCents {
			maxCents = p.Amount.Cents
		}
	}
	if maxCents == 0 {
		return "[gray]No spend recorded[-]"
	}

	var b strings.Builder
	for _, p := range points {
		bar := strings.Repeat("█", int(p.Amount.Cents*trendBarWidth/maxCents))
		fmt.Fprintf(&b, "%s [mediumpurple]%s[-] %s\n", p.Label, bar, dashboard.FormatMoney(p.Amount))
	}
	return b.String()
}

// populateTable fills the resource table from the visible resources.
func populateTable(table *tview.Table, snap dashboard.Snapshot) {
	table.Clear()

	headers := []string{"", "Name", "Type", "Provider", "Status", "Latest Cost"}
	for col, h := range headers {
		table.SetCell(0, col, tview.NewTableCell("[yellow::b]"+h+"[-::-]").
			SetAlign(tview.AlignLeft).
			SetSelectable(false))
	}

	if len(snap.Visible) == 0 {
		msg := "No resources"
		if snap.Query != "" {
			msg = fmt.Sprintf("No resources match %q", snap.Query)
		}
		table.SetCell(1, 1, tview.NewTableCell(tview.Escape(msg)).SetSelectable(false))
		return
	}

	for i, res := range snap.Visible {
		row := i + 1
		cost := "-"
		if amount, ok := dashboard.LatestCost(res); ok {
			cost = dashboard.FormatMoney(amount)
		}
		provider := string(dashboard.ProviderOf(res.Provider))
		status := string(res.Status)

		cells := []string{
			kindIcons[dashboard.KindOf(res.Type)],
			tview.Escape(res.Name),
			tview.Escape(res.Type),
			"[" + providerColors[provider] + "]" + tview.Escape(res.Provider) + "[-]",
			"[" + colorOr(statusColors[status], "white") + "]" + tview.Escape(status) + "[-]",
			cost,
		}
		for col, text := range cells {
			align := tview.AlignLeft
			if col == len(cells)-1 {
				align = tview.AlignRight
			}
			table.SetCell(row, col, tview.NewTableCell(text).SetAlign(align))
		}
	}
}

func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}
