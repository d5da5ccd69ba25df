package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"shopkeep/internal/journal"
	"shopkeep/internal/shop"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrPersonaRequired = errors.New("choose a persona before running the shop")
	ErrPersonaLocked   = errors.New("persona already chosen for this session")
	ErrUnknownPersona  = errors.New("unknown persona")
	ErrUnknownRole     = errors.New("unknown staff role")
)

type Options struct {
	Preset    shop.Preset
	Journal   journal.Journal
	Logger    *slog.Logger
	LogWindow int
	// NewSource seeds each session's randomness; nil uses a time seed.
	NewSource func() shop.Source
	Now       func() time.Time
}

// Registry holds isolated shop sessions keyed by id. Each session is
// guarded by its own lock so actions on one never wait on another.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*slot
	opts     Options
	journal  journal.Journal
	log      *slog.Logger
}

type slot struct {
	mu   sync.Mutex
	shop *shop.Session
}

func NewRegistry(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Journal == nil {
		opts.Journal = journal.Nop{}
	}
	if opts.LogWindow <= 0 {
		opts.LogWindow = shop.DefaultLogWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Preset.Name == "" {
		opts.Preset = shop.StandardPreset()
	}
	return &Registry{
		sessions: make(map[uuid.UUID]*slot),
		opts:     opts,
		journal:  opts.Journal,
		log:      opts.Logger,
	}
}

func (r *Registry) newShop() *shop.Session {
	opts := []shop.Option{
		shop.WithPreset(r.opts.Preset),
		shop.WithLogger(r.log),
	}
	if r.opts.NewSource != nil {
		opts = append(opts, shop.WithSource(r.opts.NewSource()))
	}
	s := shop.NewSession(opts...)
	s.EnsureInitialized()
	return s
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Open creates a session. persona may be empty and chosen later.
func (r *Registry) Open(ctx context.Context, persona string) (View, error) {
	var role shop.Persona
	if persona != "" {
		p, ok := shop.ParsePersona(persona)
		if !ok {
			return View{}, fmt.Errorf("%w: %q", ErrUnknownPersona, persona)
		}
		role = p
	}

	id := uuid.New()
	sl := &slot{shop: r.newShop()}
	if role != shop.PersonaNone {
		sl.shop.SetRole(role)
	}
	// The reply is built while the slot is still private to this call.
	out := r.view(id, sl.shop)
	r.mu.Lock()
	r.sessions[id] = sl
	r.mu.Unlock()

	r.log.Info("session opened", "session_id", id.String(), "preset", r.opts.Preset.Name, "persona", string(role))
	r.record(ctx, journal.Entry{
		SessionID: id,
		Action:    journal.ActionOpen,
		Message:   fmt.Sprintf("shop opened with preset %s", r.opts.Preset.Name),
	})
	return out, nil
}

func (r *Registry) Get(ctx context.Context, id uuid.UUID) (View, error) {
	var out View
	err := r.with(id, func(s *shop.Session) error {
		out = r.view(id, s)
		return nil
	})
	return out, err
}

func (r *Registry) SetRole(ctx context.Context, id uuid.UUID, persona string) (View, error) {
	p, ok := shop.ParsePersona(persona)
	if !ok {
		return View{}, fmt.Errorf("%w: %q", ErrUnknownPersona, persona)
	}
	var out View
	err := r.with(id, func(s *shop.Session) error {
		before := s.Reputation()
		if !s.SetRole(p) {
			return ErrPersonaLocked
		}
		r.record(ctx, journal.Entry{
			SessionID:       id,
			Action:          journal.ActionRole,
			Message:         fmt.Sprintf("persona set to %s", p.Title()),
			ReputationDelta: s.Reputation() - before,
		})
		out = r.view(id, s)
		return nil
	})
	return out, err
}

type SpinReply struct {
	Result  shop.SpinResult `json:"result"`
	Session View            `json:"session"`
}

func (r *Registry) Spin(ctx context.Context, id uuid.UUID) (SpinReply, error) {
	var out SpinReply
	err := r.withPersona(id, func(s *shop.Session) error {
		res := s.Spin()
		r.record(ctx, journal.Entry{
			SessionID:     id,
			Action:        journal.ActionSpin,
			Severity:      string(shop.SeveritySuccess),
			Message:       res.Narration,
			CurrencyDelta: res.CurrencyDelta,
			EnergyDelta:   res.EnergyDelta,
		})
		out = SpinReply{Result: res, Session: r.view(id, s)}
		return nil
	})
	return out, err
}

type HireReply struct {
	Result  shop.HireResult `json:"result"`
	Session View            `json:"session"`
}

// Hire mirrors the engine: an unaffordable or duplicate hire is not an
// error, the reply just reports Hired=false.
func (r *Registry) Hire(ctx context.Context, id uuid.UUID, role string) (HireReply, error) {
	staff, ok := shop.ParseStaffRole(role)
	if !ok {
		return HireReply{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	var out HireReply
	err := r.withPersona(id, func(s *shop.Session) error {
		cost, _ := s.HireQuote(staff)
		hired := s.Hire(staff)
		if hired {
			r.record(ctx, journal.Entry{
				SessionID:     id,
				Action:        journal.ActionHire,
				Severity:      string(shop.SeveritySuccess),
				Message:       fmt.Sprintf("hired %s", staff.Title()),
				CurrencyDelta: cost.Neg(),
			})
		}
		out = HireReply{
			Result:  shop.HireResult{Role: staff, Hired: hired, Cost: cost},
			Session: r.view(id, s),
		}
		return nil
	})
	return out, err
}

type TickReply struct {
	Outcome shop.EventOutcome `json:"outcome"`
	Session View              `json:"session"`
}

func (r *Registry) Tick(ctx context.Context, id uuid.UUID) (TickReply, error) {
	var out TickReply
	err := r.withPersona(id, func(s *shop.Session) error {
		outcome, err := s.AdvanceTime()
		if err != nil {
			return err
		}
		r.record(ctx, journal.Entry{
			SessionID:       id,
			Action:          journal.ActionTick,
			Event:           string(outcome.Event),
			Severity:        string(outcome.Severity),
			Message:         outcome.Narration,
			CurrencyDelta:   outcome.Delta.Currency,
			EnergyDelta:     outcome.Delta.Energy - outcome.EnergySpent,
			ReputationDelta: outcome.Delta.Reputation,
		})
		out = TickReply{Outcome: outcome, Session: r.view(id, s)}
		return nil
	})
	return out, err
}

// Reset is "close shop": the session keeps its id but starts over.
func (r *Registry) Reset(ctx context.Context, id uuid.UUID) (View, error) {
	var out View
	err := r.with(id, func(s *shop.Session) error {
		s.Reset()
		s.EnsureInitialized()
		r.record(ctx, journal.Entry{SessionID: id, Action: journal.ActionReset, Message: "shop closed and reopened"})
		out = r.view(id, s)
		return nil
	})
	return out, err
}

func (r *Registry) Close(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	r.log.Info("session closed", "session_id", id.String())
	r.record(ctx, journal.Entry{SessionID: id, Action: journal.ActionClose, Message: "session discarded"})
	return nil
}

func (r *Registry) with(id uuid.UUID, fn func(*shop.Session) error) error {
	r.mu.RLock()
	sl, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return fn(sl.shop)
}

func (r *Registry) withPersona(id uuid.UUID, fn func(*shop.Session) error) error {
	return r.with(id, func(s *shop.Session) error {
		if s.Role() == shop.PersonaNone {
			return ErrPersonaRequired
		}
		return fn(s)
	})
}

func (r *Registry) record(ctx context.Context, e journal.Entry) {
	if err := r.journal.Record(ctx, journal.Stamp(e, r.opts.Now())); err != nil {
		r.log.Warn("journal record failed", "session_id", e.SessionID.String(), "action", string(e.Action), "err", err)
	}
}
