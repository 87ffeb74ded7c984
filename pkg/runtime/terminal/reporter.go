package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/aurascale/pkg/dashboard"
	"github.com/de-tools/aurascale/pkg/models/domain"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

const trendBarWidth = 40

var providerBadges = map[dashboard.Provider]func(a ...interface{}) string{
	dashboard.ProviderAWS:   color.New(color.FgYellow, color.Bold).SprintFunc(),
	dashboard.ProviderAzure: color.New(color.FgBlue, color.Bold).SprintFunc(),
	dashboard.ProviderGCP:   color.New(color.FgGreen, color.Bold).SprintFunc(),
	dashboard.ProviderOther: color.New(color.FgWhite).SprintFunc(),
}

var kindIcons = map[dashboard.Kind]string{
	dashboard.KindDatabase: "⛁",
	dashboard.KindStorage:  "▤",
	dashboard.KindService:  "⚡",
}

var statusColors = map[domain.ResourceStatus]func(a ...interface{}) string{
	domain.ResourceStatusHealthy:  color.New(color.FgGreen).SprintFunc(),
	domain.ResourceStatusDegraded: color.New(color.FgYellow).SprintFunc(),
	domain.ResourceStatusOffline:  color.New(color.FgRed).SprintFunc(),
}

// Reporter renders a dashboard snapshot as a one-shot colored report.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) Handle(snap dashboard.Snapshot) error {
	var b strings.Builder

	summary := fmt.Sprintf("Total Monthly Spend: %s\nResources: %d",
		pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint(dashboard.FormatMoney(snap.Total)),
		len(snap.Resources))
	if !snap.UpdatedAt.IsZero() {
		summary += fmt.Sprintf("\nUpdated: %s", snap.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	b.WriteString(pterm.DefaultBox.WithTitle("AuraScale").Sprint(summary))
	b.WriteString("\n\n")

	if snap.LastError != nil {
		b.WriteString(pterm.Warning.Sprintfln("Showing last known data: %s", snap.LastError))
		b.WriteString("\n")
	}

	trend, err := renderTrend(snap.Trend)
	if err != nil {
		return err
	}
	b.WriteString(trend)
	b.WriteString("\n")

	resources, err := renderResources(snap)
	if err != nil {
		return err
	}
	b.WriteString(resources)

	_, err = io.WriteString(r.writer, b.String())
	return err
}

func renderTrend(points []dashboard.TrendPoint) (string, error) {
	var maxCents int64
	for _, p := range points {
		if p.Amount.Cents > maxCents {
			maxCents = p.Amount.Cents
		}
	}
	if maxCents == 0 {
		return pterm.Warning.Sprintln("All costs are $0.00 for this period"), nil
	}

	tableData := pterm.TableData{{"Month", "Cost", ""}}
	for _, p := range points {
		barLength := int(p.Amount.Cents * trendBarWidth / maxCents)
		tableData = append(tableData, []string{
			p.Label,
			dashboard.FormatMoney(p.Amount),
			pterm.FgCyan.Sprint(strings.Repeat("█", barLength)),
		})
	}

	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData).
		Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render trend: %w", err)
	}
	return "Cost Trend\n" + out + "\n", nil
}

func renderResources(snap dashboard.Snapshot) (string, error) {
	if len(snap.Visible) == 0 {
		if snap.Query != "" {
			return fmt.Sprintf("No resources match %q\n", snap.Query), nil
		}
		return "No resources\n", nil
	}

	tableData := pterm.TableData{{"", "Name", "Type", "Provider", "Environment", "Status", "Latest Cost"}}
	for _, res := range snap.Visible {
		cost := "-"
		if amount, ok := dashboard.LatestCost(res); ok {
			cost = dashboard.FormatMoney(amount)
		}
		status := string(res.Status)
		if paint, ok := statusColors[res.Status]; ok {
			status = paint(status)
		}
		tableData = append(tableData, []string{
			kindIcons[dashboard.KindOf(res.Type)],
			res.Name,
			res.Type,
			providerBadges[dashboard.ProviderOf(res.Provider)](res.Provider),
			res.Environment,
			status,
			cost,
		})
	}

	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData).
		Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render resources: %w", err)
	}
	return out + "\n", nil
}
