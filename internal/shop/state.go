package shop

import "github.com/shopspring/decimal"

// State is the whole simulation record for one session.
type State struct {
	Currency   decimal.Decimal `json:"currency"`
	Reputation int             `json:"reputation"`
	Energy     int             `json:"energy"`
	Staff      []StaffRole     `json:"staff"`
	Role       Persona         `json:"role"`
	Log        []LogEntry      `json:"log"`
	LastLunch  string          `json:"last_lunch"`
}

func newState(p Preset) *State {
	staff := make([]StaffRole, len(p.Staff))
	copy(staff, p.Staff)
	return &State{
		Currency:   p.Currency,
		Reputation: p.Reputation,
		Energy:     p.Energy,
		Staff:      staff,
		Role:       PersonaNone,
		Log:        []LogEntry{},
		LastLunch:  DefaultLunchBlurb,
	}
}

func (s *State) HasStaff(role StaffRole) bool {
	for _, r := range s.Staff {
		if r == role {
			return true
		}
	}
	return false
}

func (s *State) HasDeterrent() bool {
	for _, r := range s.Staff {
		if spec, ok := LookupStaff(r); ok && spec.Deterrent {
			return true
		}
	}
	return false
}

func (s *State) Counters() Counters {
	return Counters{Currency: s.Currency, Energy: s.Energy, Reputation: s.Reputation}
}

func (s *State) apply(d Delta) {
	s.Currency = s.Currency.Add(d.Currency)
	s.Energy += d.Energy
	s.Reputation += d.Reputation
}

func (s *State) Clone() State {
	out := *s
	out.Staff = make([]StaffRole, len(s.Staff))
	copy(out.Staff, s.Staff)
	out.Log = make([]LogEntry, len(s.Log))
	copy(out.Log, s.Log)
	return out
}
