package notify

import (
	"encoding/json"
	"time"

	"github.com/de-tools/aurascale/pkg/models/domain"
	"github.com/google/uuid"
)

const SeedCompletedType = "catalog.seeded"

// SeedCompletedEvent announces that the store holds a freshly seeded catalog.
type SeedCompletedEvent struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	Resources   int       `json:"resources"`
	Costs       int       `json:"costs"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewSeedCompletedEvent(resources, costs int, total domain.Money, at time.Time) SeedCompletedEvent {
	return SeedCompletedEvent{
		EventID:     uuid.NewString(),
		Type:        SeedCompletedType,
		Resources:   resources,
		Costs:       costs,
		TotalAmount: total.Dollars(),
		OccurredAt:  at.UTC(),
	}
}

func (e SeedCompletedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
