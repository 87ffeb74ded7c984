package dashboard

import (
	"strings"
	"time"

	"github.com/de-tools/aurascale/pkg/models/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Provider string

const (
	ProviderAWS   Provider = "aws"
	ProviderAzure Provider = "azure"
	ProviderGCP   Provider = "gcp"
	ProviderOther Provider = "other"
)

type Kind string

const (
	KindDatabase Kind = "database"
	KindStorage  Kind = "storage"
	KindService  Kind = "service"
)

type TrendPoint struct {
	Month  time.Time
	Label  string
	Amount domain.Money
}

// trendFactors scale the current total back over the last four months.
var trendFactors = [...]float64{0.70, 0.80, 0.95, 1.00}

var printer = message.NewPrinter(language.English)

// LatestCost returns the resource's first cost record, the one the cards show.
func LatestCost(r domain.Resource) (domain.Money, bool) {
	if len(r.Costs) == 0 {
		return domain.Money{}, false
	}
	return r.Costs[0].Amount, true
}

func TotalSpend(resources []domain.Resource) domain.Money {
	var total domain.Money
	for _, r := range resources {
		if amount, ok := LatestCost(r); ok {
			total = total.Add(amount)
		}
	}
	return total
}

// Filter keeps resources whose name or provider contains query, ignoring case.
func Filter(resources []domain.Resource, query string) []domain.Resource {
	query = strings.ToLower(query)
	if query == "" {
		return resources
	}

	matched := make([]domain.Resource, 0, len(resources))
	for _, r := range resources {
		if strings.Contains(strings.ToLower(r.Name), query) ||
			strings.Contains(strings.ToLower(r.Provider), query) {
			matched = append(matched, r)
		}
	}
	return matched
}

func Trend(total domain.Money, now time.Time) []TrendPoint {
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	points := make([]TrendPoint, 0, len(trendFactors))
	for i, factor := range trendFactors {
		month := current.AddDate(0, i-len(trendFactors)+1, 0)
		points = append(points, TrendPoint{
			Month:  month,
			Label:  month.Format("Jan"),
			Amount: total.Scale(factor),
		})
	}
	return points
}

func ProviderOf(provider string) Provider {
	switch strings.ToUpper(strings.TrimSpace(provider)) {
	case "AWS":
		return ProviderAWS
	case "AZURE":
		return ProviderAzure
	case "GCP":
		return ProviderGCP
	default:
		return ProviderOther
	}
}

func KindOf(resourceType string) Kind {
	switch strings.ToLower(strings.TrimSpace(resourceType)) {
	case "database":
		return KindDatabase
	case "storage":
		return KindStorage
	default:
		return KindService
	}
}

func FormatMoney(m domain.Money) string {
	if m.Cents < 0 {
		return "-" + FormatMoney(domain.Money{Cents: -m.Cents})
	}
	return printer.Sprintf("$%.2f", m.Dollars())
}
