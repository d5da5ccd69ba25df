// Package journal keeps a write-only audit trail of resolved shop actions.
// Nothing is ever read back into a session.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Action string

const (
	ActionOpen  Action = "open"
	ActionRole  Action = "role"
	ActionSpin  Action = "spin"
	ActionHire  Action = "hire"
	ActionTick  Action = "tick"
	ActionReset Action = "reset"
	ActionClose Action = "close"
)

type Entry struct {
	ID              uuid.UUID       `json:"id"`
	SessionID       uuid.UUID       `json:"session_id"`
	Action          Action          `json:"action"`
	Event           string          `json:"event,omitempty"`
	Severity        string          `json:"severity,omitempty"`
	Message         string          `json:"message"`
	CurrencyDelta   decimal.Decimal `json:"currency_delta"`
	EnergyDelta     int             `json:"energy_delta"`
	ReputationDelta int             `json:"reputation_delta"`
	At              time.Time       `json:"at"`
}

type Journal interface {
	Record(ctx context.Context, e Entry) error
	Close() error
}

// Stamp fills the id and timestamp when the caller left them empty.
func Stamp(e Entry, now time.Time) Entry {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.At.IsZero() {
		e.At = now.UTC()
	}
	return e
}

type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }
func (Nop) Close() error                        { return nil }
