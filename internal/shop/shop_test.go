package shop

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays values (mod n) and then keeps returning 0.
type scriptedSource struct {
	values []int
	calls  []int
}

func (s *scriptedSource) Intn(n int) int {
	s.calls = append(s.calls, n)
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}

func script(values ...int) *scriptedSource {
	return &scriptedSource{values: values}
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestSession(src Source, opts ...Option) *Session {
	base := []Option{
		WithSource(src),
		WithClock(fixedClock{t: time.Date(2026, 10, 18, 9, 30, 15, 0, time.Local)}),
	}
	return NewSession(append(base, opts...)...)
}

func TestEnsureInitializedDefaults(t *testing.T) {
	s := newTestSession(script())
	require.False(t, s.Initialized())

	s.EnsureInitialized()
	st := s.Snapshot()
	assert.True(t, st.Currency.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 85, st.Reputation)
	assert.Equal(t, 100, st.Energy)
	assert.Equal(t, []StaffRole{StaffOwner, StaffCashier, StaffClerk}, st.Staff)
	assert.Equal(t, PersonaNone, st.Role)
	assert.Empty(t, st.Log)
	assert.Equal(t, DefaultLunchBlurb, st.LastLunch)

	s.Spin()
	s.EnsureInitialized()
	assert.Len(t, s.Snapshot().Log, 1, "second EnsureInitialized must not rebuild state")
}

func TestResetRoundTrip(t *testing.T) {
	s := newTestSession(script(0, 0, 0, 0))
	s.EnsureInitialized()
	fresh := s.Snapshot()

	require.True(t, s.SetRole(PersonaSocial))
	require.True(t, s.Hire(StaffGuard))
	s.Spin()
	_, err := s.AdvanceTime()
	require.NoError(t, err)

	s.Reset()
	require.False(t, s.Initialized())
	s.EnsureInitialized()
	assert.Equal(t, fresh, s.Snapshot())
}

func TestHireGuardThenThiefIsDeterred(t *testing.T) {
	// roll 12 lands in the thief bucket [10,15) of the base table.
	src := script(12)
	s := newTestSession(src)
	s.EnsureInitialized()

	require.True(t, s.Hire(StaffGuard))
	st := s.Snapshot()
	assert.True(t, st.Currency.Equal(decimal.NewFromInt(800)), "currency=%s", st.Currency)
	assert.Contains(t, st.Staff, StaffGuard)
	require.Len(t, st.Log, 1)
	assert.Equal(t, SeveritySuccess, st.Log[0].Severity)

	out, err := s.AdvanceTime()
	require.NoError(t, err)
	assert.Equal(t, EventThief, out.Event)
	assert.Equal(t, SeverityInfo, out.Severity)
	assert.True(t, s.Currency().Equal(decimal.NewFromInt(800)))
	log := s.VisibleLog(DefaultLogWindow)
	require.Len(t, log, 2)
	assert.Equal(t, SeverityInfo, log[0].Severity)
	assert.Equal(t, []int{100}, src.calls, "deterred thief must not draw a loss")
}

func TestThiefWithoutDeterrentLosesMoney(t *testing.T) {
	tests := []struct {
		name string
		draw int
		want int64
	}{
		{name: "minimum", draw: 0, want: 200},
		{name: "maximum", draw: 400, want: 600},
		{name: "middle", draw: 123, want: 323},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(script(10, tc.draw))
			before := s.Currency()

			out, err := s.AdvanceTime()
			require.NoError(t, err)
			require.Equal(t, EventThief, out.Event)
			assert.Equal(t, SeverityDanger, out.Severity)

			loss := before.Sub(s.Currency())
			assert.True(t, loss.Equal(decimal.NewFromInt(tc.want)), "loss=%s", loss)
			assert.True(t, loss.GreaterThanOrEqual(decimal.NewFromInt(200)))
			assert.True(t, loss.LessThanOrEqual(decimal.NewFromInt(600)))
		})
	}
}

func TestThiefWeightIgnoresRoster(t *testing.T) {
	s := newTestSession(script(12), WithPreset(Preset{
		Name:     "guarded",
		Currency: decimal.NewFromInt(50),
		Energy:   100,
		Staff:    []StaffRole{StaffOwner, StaffFishmonger},
	}))
	out, err := s.AdvanceTime()
	require.NoError(t, err)
	assert.Equal(t, EventThief, out.Event)
	assert.True(t, out.Delta.Currency.IsZero())
}

func TestHireIsSilentNoop(t *testing.T) {
	s := newTestSession(script(), WithPreset(Preset{
		Name:     "poor",
		Currency: decimal.NewFromInt(150),
		Energy:   100,
		Staff:    []StaffRole{StaffOwner, StaffClerk},
	}))
	s.EnsureInitialized()

	assert.False(t, s.Hire(StaffFishmonger), "unaffordable")
	assert.False(t, s.Hire(StaffClerk), "already on staff")
	assert.False(t, s.Hire(StaffOwner), "not hirable")
	assert.False(t, s.Hire(StaffRole("wizard")), "unknown role")
	assert.True(t, s.Currency().Equal(decimal.NewFromInt(150)))
	assert.Empty(t, s.VisibleLog(DefaultLogWindow))

	assert.True(t, s.Hire(StaffCleaner))
	assert.True(t, s.Currency().Equal(decimal.NewFromInt(50)))
}

func TestHireSequencesNeverDuplicateOrOverdebit(t *testing.T) {
	src := NewSource(7)
	roles := []StaffRole{StaffCashier, StaffCleaner, StaffGuard, StaffClerk, StaffFishmonger, StaffOwner}
	for round := 0; round < 50; round++ {
		s := newTestSession(src, WithPreset(Preset{
			Name:     "round",
			Currency: decimal.NewFromInt(int64(src.Intn(1500))),
			Energy:   100,
			Staff:    []StaffRole{StaffOwner},
		}))
		spent := decimal.Zero
		start := s.Currency()
		for i := 0; i < 20; i++ {
			role := roles[src.Intn(len(roles))]
			before := s.Currency()
			if s.Hire(role) {
				spec, _ := LookupStaff(role)
				require.True(t, before.Sub(s.Currency()).Equal(spec.Cost))
				spent = spent.Add(spec.Cost)
			} else {
				require.True(t, before.Equal(s.Currency()))
			}
		}
		seen := map[StaffRole]bool{}
		for _, r := range s.Staff() {
			require.False(t, seen[r], "duplicate role %s", r)
			seen[r] = true
		}
		require.True(t, start.Sub(spent).Equal(s.Currency()))
		require.False(t, s.Currency().IsNegative())
	}
}

func TestAdvanceTimeBlockedWhenExhausted(t *testing.T) {
	for _, energy := range []int{0, -25} {
		src := script(50)
		s := newTestSession(src, WithPreset(Preset{
			Name:     "tired",
			Currency: decimal.NewFromInt(300),
			Energy:   energy,
			Staff:    []StaffRole{StaffOwner},
		}))
		s.EnsureInitialized()
		before := s.Snapshot()

		_, err := s.AdvanceTime()
		require.ErrorIs(t, err, ErrBlockedByExhaustion)
		assert.Equal(t, before, s.Snapshot())
		assert.Empty(t, src.calls, "no random draws while exhausted")
	}
}

func TestAdvanceTimeAlwaysSpendsEnergyCost(t *testing.T) {
	// One roll inside each bucket of the base table, then a sub-draw.
	rolls := []int{0, 10, 15, 40, 80, 90, 91, 99}
	for _, roll := range rolls {
		for sub := 0; sub < 3; sub++ {
			s := newTestSession(script(roll, sub))
			before := s.Energy()
			out, err := s.AdvanceTime()
			require.NoError(t, err)
			assert.Equal(t, EnergyCost, out.EnergySpent)
			assert.Equal(t, before-EnergyCost+out.Delta.Energy, s.Energy(), "event %s", out.Event)
			assert.Equal(t, s.Energy(), out.Counters.Energy)
		}
	}
}

func TestEnergyIsNotClamped(t *testing.T) {
	// heartbreak bucket [90,100), first line costs 15 energy.
	s := newTestSession(script(95, 0), WithPreset(Preset{
		Name:     "drained",
		Currency: decimal.NewFromInt(10),
		Energy:   5,
		Staff:    []StaffRole{StaffOwner},
	}))
	out, err := s.AdvanceTime()
	require.NoError(t, err)
	require.Equal(t, EventHeartbreak, out.Event)
	assert.Equal(t, -20, s.Energy())

	_, err = s.AdvanceTime()
	assert.ErrorIs(t, err, ErrBlockedByExhaustion)
}

func TestEventEffects(t *testing.T) {
	t.Run("big client celebrates", func(t *testing.T) {
		s := newTestSession(script(3, 2000))
		out, err := s.AdvanceTime()
		require.NoError(t, err)
		assert.Equal(t, EventBigClient, out.Event)
		assert.True(t, out.Celebrate)
		assert.Equal(t, SeveritySuccess, out.Severity)
		assert.True(t, out.Delta.Currency.Equal(decimal.NewFromInt(2500)))
	})
	t.Run("browser hurts reputation without cleaner", func(t *testing.T) {
		s := newTestSession(script(20))
		out, err := s.AdvanceTime()
		require.NoError(t, err)
		assert.Equal(t, EventBrowsedNoBuy, out.Event)
		assert.Equal(t, SeverityWarning, out.Severity)
		assert.Equal(t, 83, s.Reputation())
	})
	t.Run("cleaner keeps reputation", func(t *testing.T) {
		s := newTestSession(script(20))
		require.True(t, s.Hire(StaffCleaner))
		out, err := s.AdvanceTime()
		require.NoError(t, err)
		assert.Equal(t, SeverityInfo, out.Severity)
		assert.Equal(t, 85, s.Reputation())
	})
	t.Run("regular sale", func(t *testing.T) {
		s := newTestSession(script(50, 0))
		out, err := s.AdvanceTime()
		require.NoError(t, err)
		assert.Equal(t, EventRegular, out.Event)
		assert.True(t, s.Currency().Equal(decimal.NewFromInt(1020)))
	})
	t.Run("special dialogue reputation", func(t *testing.T) {
		s := newTestSession(script(82, 2))
		out, err := s.AdvanceTime()
		require.NoError(t, err)
		assert.Equal(t, EventSpecialDialogue, out.Event)
		assert.Equal(t, 95, s.Reputation())
	})
	t.Run("complaint costs reputation not energy", func(t *testing.T) {
		s := newTestSession(script(95, 2))
		out, err := s.AdvanceTime()
		require.NoError(t, err)
		assert.Equal(t, EventHeartbreak, out.Event)
		assert.Equal(t, 75, s.Reputation())
		assert.Equal(t, 90, s.Energy())
	})
}

func TestPersonaWeights(t *testing.T) {
	r := DefaultRules()
	assert.Equal(t, []int{10, 5, 25, 40, 10, 10}, r.eventWeights(PersonaNone))
	assert.Equal(t, []int{15, 5, 25, 40, 10, 10}, r.eventWeights(PersonaScholar))
	assert.Equal(t, []int{10, 1, 25, 40, 10, 10}, r.eventWeights(PersonaHardcore))

	r.Personas[PersonaHardcore] = PersonaModifier{Weights: map[EventKind]int{EventThief: -50}}
	assert.Equal(t, 0, r.eventWeights(PersonaHardcore)[1])
}

func TestSetRoleOnlyOnce(t *testing.T) {
	s := newTestSession(script())
	assert.False(t, s.SetRole(Persona("pirate")))
	assert.Equal(t, PersonaNone, s.Role())

	require.True(t, s.SetRole(PersonaSocial))
	assert.Equal(t, 95, s.Reputation())
	assert.False(t, s.SetRole(PersonaScholar))
	assert.Equal(t, PersonaSocial, s.Role())
	assert.Equal(t, 95, s.Reputation())
}

func TestSpinAppliesLunch(t *testing.T) {
	s := newTestSession(script(3))
	res := s.Spin()
	assert.Equal(t, "Skip lunch to save money", res.Food)
	assert.Equal(t, 90, s.Energy())
	assert.True(t, s.Currency().Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, res.Narration, s.LastLunch())

	log := s.VisibleLog(1)
	require.Len(t, log, 1)
	assert.Equal(t, SeveritySuccess, log[0].Severity)
	assert.Equal(t, res.Narration, log[0].Message)

	res = s.Spin()
	assert.Equal(t, "Wagyu banquet", res.Food)
	assert.Equal(t, 140, s.Energy())
	assert.True(t, s.Currency().Equal(decimal.NewFromInt(900)))
}

func TestSpinDistribution(t *testing.T) {
	const spins = 10_000
	s := newTestSession(NewSource(42))
	counts := map[string]int{}
	for i := 0; i < spins; i++ {
		counts[s.Spin().Food]++
	}
	require.Len(t, counts, 5)
	for food, n := range counts {
		freq := float64(n) / spins
		assert.InDelta(t, 0.20, freq, 0.02, "food %s", food)
	}
}

func TestLogOrderingAndIcons(t *testing.T) {
	s := newTestSession(script())
	s.EnsureInitialized()
	s.appendLog("first", SeverityInfo)
	s.appendLog("second", SeverityDanger)
	s.appendLog("third", Severity("mystery"))
	s.appendLog("fourth", "")

	log := s.VisibleLog(10)
	require.Len(t, log, 4)
	assert.Equal(t, "fourth", log[0].Message)
	assert.Equal(t, "💬", log[0].Icon)
	assert.Equal(t, FallbackIcon, log[1].Icon)
	assert.Equal(t, "🔥", log[2].Icon)
	assert.Equal(t, "first", log[3].Message)
	assert.Equal(t, "09:30:15", log[3].Timestamp)
	assert.Equal(t, "💬 09:30:15 - first", log[3].String())

	assert.Len(t, s.VisibleLog(2), 2)
	assert.Empty(t, s.VisibleLog(0))
}

func TestIsBankrupt(t *testing.T) {
	s := newTestSession(script(10, 400), WithPreset(Preset{
		Name:     "thin",
		Currency: decimal.NewFromInt(300),
		Energy:   100,
		Staff:    []StaffRole{StaffOwner},
	}))
	assert.False(t, s.IsBankrupt())
	_, err := s.AdvanceTime()
	require.NoError(t, err)
	assert.True(t, s.Currency().Equal(decimal.NewFromInt(-300)))
	assert.True(t, s.IsBankrupt())
}

func TestPickWeighted(t *testing.T) {
	assert.Equal(t, -1, pickWeighted(script(), []int{0, 0}))
	assert.Equal(t, 2, pickWeighted(script(0), []int{0, 0, 3}))
	assert.Equal(t, 1, pickWeighted(script(4), []int{2, 3, 0}))
	assert.Equal(t, 7, uniformInt(script(), 7, 7))
}

func TestPresetValidate(t *testing.T) {
	require.NoError(t, StandardPreset().Validate())
	assert.Error(t, Preset{Name: "x", Staff: []StaffRole{StaffGuard, StaffGuard}}.Validate())
	assert.Error(t, Preset{Name: "x", Staff: []StaffRole{"juggler"}}.Validate())
}

func TestDefaultRulesNeverDrawFromEmptyRange(t *testing.T) {
	r := DefaultRules()
	require.NotEmpty(t, r.Lunches)
	require.NotEmpty(t, r.Dialogue)
	require.NotEmpty(t, r.Heartbreak)
	for _, rng := range []IntRange{r.BigClient, r.TheftLoss, r.RegularSale} {
		assert.LessOrEqual(t, rng.Min, rng.Max)
	}

	src := script()
	decideSpin(r, src)
	st := newState(StandardPreset())
	for _, p := range append([]Persona{PersonaNone}, Personas...) {
		selectEvent(r, p, src)
	}
	for _, w := range r.Events {
		resolveEvent(r, w.Kind, st, src)
	}
	require.NotEmpty(t, src.calls)
	for _, n := range src.calls {
		assert.Positive(t, n)
	}
}
