package shop

import (
	"log/slog"

	"github.com/shopspring/decimal"
)

// Session owns one simulation record. It is not safe for concurrent use;
// callers that share a Session must serialize access.
type Session struct {
	rules  Rules
	preset Preset
	src    Source
	clock  Clock
	log    *slog.Logger
	state  *State
}

type Option func(*Session)

func WithPreset(p Preset) Option {
	return func(s *Session) { s.preset = p }
}

func WithSource(src Source) Option {
	return func(s *Session) {
		if src != nil {
			s.src = src
		}
	}
}

func WithClock(c Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.log = logger
		}
	}
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		rules:  DefaultRules(),
		preset: StandardPreset(),
		src:    newTimeSource(),
		clock:  realClock{},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureInitialized builds the state from the preset if none exists.
func (s *Session) EnsureInitialized() {
	if s.state != nil {
		return
	}
	s.state = newState(s.preset)
	s.log.Debug("shop opened", "preset", s.preset.Name, "currency", s.state.Currency.String())
}

// Reset discards the whole state. The next EnsureInitialized starts over.
func (s *Session) Reset() {
	s.state = nil
	s.log.Debug("shop closed", "preset", s.preset.Name)
}

func (s *Session) Initialized() bool {
	return s.state != nil
}

// SetRole fixes the persona. It only takes effect once per session.
func (s *Session) SetRole(p Persona) bool {
	s.EnsureInitialized()
	if s.state.Role != PersonaNone {
		return false
	}
	if _, ok := ParsePersona(string(p)); !ok {
		return false
	}
	s.state.Role = p
	if bonus := s.rules.Personas[p].ReputationBonus; bonus != 0 {
		s.state.Reputation += bonus
	}
	s.log.Debug("persona chosen", "persona", string(p))
	return true
}

func (s *Session) Snapshot() State {
	s.EnsureInitialized()
	return s.state.Clone()
}

func (s *Session) Currency() decimal.Decimal {
	s.EnsureInitialized()
	return s.state.Currency
}

func (s *Session) Energy() int {
	s.EnsureInitialized()
	return s.state.Energy
}

func (s *Session) Reputation() int {
	s.EnsureInitialized()
	return s.state.Reputation
}

func (s *Session) Role() Persona {
	s.EnsureInitialized()
	return s.state.Role
}

func (s *Session) Staff() []StaffRole {
	s.EnsureInitialized()
	out := make([]StaffRole, len(s.state.Staff))
	copy(out, s.state.Staff)
	return out
}

func (s *Session) LastLunch() string {
	s.EnsureInitialized()
	return s.state.LastLunch
}

func (s *Session) Preset() Preset {
	return s.preset
}

// IsBankrupt reports whether the till has run dry. Nothing in the engine
// prevents play from continuing.
func (s *Session) IsBankrupt() bool {
	s.EnsureInitialized()
	return !s.state.Currency.IsPositive()
}
