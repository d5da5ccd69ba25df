package shop

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type LogEntry struct {
	Icon      string   `json:"icon"`
	Severity  Severity `json:"severity"`
	Timestamp string   `json:"timestamp"`
	Message   string   `json:"message"`
}

func (e LogEntry) String() string {
	return fmt.Sprintf("%s %s - %s", e.Icon, e.Timestamp, e.Message)
}

type Counters struct {
	Currency   decimal.Decimal `json:"currency"`
	Energy     int             `json:"energy"`
	Reputation int             `json:"reputation"`
}

// Delta is the change one resolved outcome applies to the counters.
type Delta struct {
	Currency   decimal.Decimal `json:"currency"`
	Energy     int             `json:"energy"`
	Reputation int             `json:"reputation"`
}

type SpinResult struct {
	Food          string          `json:"food"`
	EnergyDelta   int             `json:"energy_delta"`
	CurrencyDelta decimal.Decimal `json:"currency_delta"`
	Narration     string          `json:"narration"`
}

type EventOutcome struct {
	Event       EventKind `json:"event"`
	Narration   string    `json:"narration"`
	Severity    Severity  `json:"severity"`
	Celebrate   bool      `json:"celebrate"`
	EnergySpent int       `json:"energy_spent"`
	Delta       Delta     `json:"delta"`
	Counters    Counters  `json:"counters"`
}

type HireResult struct {
	Role  StaffRole       `json:"role"`
	Hired bool            `json:"hired"`
	Cost  decimal.Decimal `json:"cost"`
}

// Preset holds the starting values a fresh session is built from.
type Preset struct {
	Name       string          `json:"name"`
	Currency   decimal.Decimal `json:"currency"`
	Reputation int             `json:"reputation"`
	Energy     int             `json:"energy"`
	Staff      []StaffRole     `json:"staff"`
}

func StandardPreset() Preset {
	return Preset{
		Name:       "standard",
		Currency:   decimal.NewFromInt(1000),
		Reputation: 85,
		Energy:     100,
		Staff:      []StaffRole{StaffOwner, StaffCashier, StaffClerk},
	}
}

func (p Preset) Validate() error {
	seen := make(map[StaffRole]struct{}, len(p.Staff))
	for _, role := range p.Staff {
		if _, ok := LookupStaff(role); !ok {
			return fmt.Errorf("preset %q: unknown staff role %q", p.Name, role)
		}
		if _, dup := seen[role]; dup {
			return fmt.Errorf("preset %q: duplicate staff role %q", p.Name, role)
		}
		seen[role] = struct{}{}
	}
	return nil
}
