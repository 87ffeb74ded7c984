package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/aurascale/pkg/dashboard"
)

type TableConfig struct {
	NameWidth     int
	TypeWidth     int
	ProviderWidth int
	CostWidth     int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:     28,
		TypeWidth:     14,
		ProviderWidth: 12,
		CostWidth:     14,
	}
}

// Reporter writes an uncolored fixed-width report, suited to pipes and logs.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type row struct {
	Name     string
	Type     string
	Provider string
	Cost     string
}

type view struct {
	Total     string
	Count     int
	Query     string
	LastError error
	Trend     []dashboard.TrendPoint
	Rows      []row
}

func (c *Reporter) Handle(snap dashboard.Snapshot) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, typ, provider, cost string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %*s |",
				c.config.NameWidth, name,
				c.config.TypeWidth, typ,
				c.config.ProviderWidth, provider,
				c.config.CostWidth, cost)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.TypeWidth+2),
				strings.Repeat("-", c.config.ProviderWidth+2),
				strings.Repeat("-", c.config.CostWidth+2))
		},
		"money": dashboard.FormatMoney,
	}

	tmpl := `AuraScale
Total Monthly Spend: {{.Total}}
Resources: {{.Count}}{{if .Query}} (filter: {{.Query}}){{end}}
{{if .LastError}}Warning: showing last known data: {{.LastError}}
{{end}}
=== Cost Trend ===
{{range .Trend}}{{.Label}}: {{money .Amount}}
{{end}}
{{if .Rows}}{{separator}}
{{formatRow "Name" "Type" "Provider" "Latest Cost"}}
{{separator}}
{{range .Rows}}{{formatRow .Name .Type .Provider .Cost}}
{{end}}{{separator}}
{{else}}No resources
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	v := view{
		Total:     dashboard.FormatMoney(snap.Total),
		Count:     len(snap.Resources),
		Query:     snap.Query,
		LastError: snap.LastError,
		Trend:     snap.Trend,
		Rows:      make([]row, 0, len(snap.Visible)),
	}
	for _, res := range snap.Visible {
		cost := "-"
		if amount, ok := dashboard.LatestCost(res); ok {
			cost = dashboard.FormatMoney(amount)
		}
		v.Rows = append(v.Rows, row{Name: res.Name, Type: res.Type, Provider: res.Provider, Cost: cost})
	}

	return t.Execute(c.writer, v)
}
