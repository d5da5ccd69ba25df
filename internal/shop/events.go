package shop

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type eventDecision struct {
	kind      EventKind
	narration string
	severity  Severity
	celebrate bool
	delta     Delta
}

// selectEvent draws the event category. The roster plays no part here.
func selectEvent(r Rules, persona Persona, src Source) EventKind {
	idx := pickWeighted(src, r.eventWeights(persona))
	if idx < 0 {
		return EventRegular
	}
	return r.Events[idx].Kind
}

// resolveEvent computes the effect of kind against the current state without
// touching it.
func resolveEvent(r Rules, kind EventKind, st *State, src Source) eventDecision {
	d := eventDecision{kind: kind, severity: SeverityInfo}
	switch kind {
	case EventBigClient:
		deal := uniformInt(src, r.BigClient.Min, r.BigClient.Max)
		d.delta.Currency = decimal.NewFromInt(int64(deal))
		d.severity = SeveritySuccess
		d.celebrate = true
		d.narration = fmt.Sprintf("A big client walked in! Xiaoyu handled it personally and closed a ¥%d deal!", deal)
	case EventThief:
		if st.HasDeterrent() {
			d.narration = "A thief spotted the staff on watch and turned tail. Thief deterred."
			break
		}
		loss := uniformInt(src, r.TheftLoss.Min, r.TheftLoss.Max)
		d.delta.Currency = decimal.NewFromInt(int64(-loss))
		d.severity = SeverityDanger
		d.narration = fmt.Sprintf("🚨 Shoplifting! Lost ¥%d!", loss)
	case EventBrowsedNoBuy:
		if st.HasStaff(StaffCleaner) {
			d.narration = "A customer browsed the spotless shelves and left without buying."
			break
		}
		d.delta.Reputation = -2
		d.severity = SeverityWarning
		d.narration = "A customer browsed the dusty shelves and left grumbling (reputation -2)."
	case EventSpecialDialogue:
		line := r.Dialogue[src.Intn(len(r.Dialogue))]
		d.delta.Reputation = line.Reputation
		d.delta.Energy = line.Energy
		d.narration = flavorText(line)
	case EventHeartbreak:
		line := r.Heartbreak[src.Intn(len(r.Heartbreak))]
		d.delta.Reputation = line.Reputation
		d.delta.Energy = line.Energy
		d.severity = SeverityWarning
		d.narration = "😵 " + flavorText(line)
	default:
		d.kind = EventRegular
		sale := uniformInt(src, r.RegularSale.Min, r.RegularSale.Max)
		d.delta.Currency = decimal.NewFromInt(int64(sale))
		d.narration = fmt.Sprintf("A regular customer paid ¥%d.", sale)
	}
	return d
}

func flavorText(line FlavorLine) string {
	switch {
	case line.Energy != 0 && line.Reputation != 0:
		return fmt.Sprintf("%s (energy %+d, reputation %+d)", line.Text, line.Energy, line.Reputation)
	case line.Energy != 0:
		return fmt.Sprintf("%s (energy %+d)", line.Text, line.Energy)
	case line.Reputation != 0:
		return fmt.Sprintf("%s (reputation %+d)", line.Text, line.Reputation)
	default:
		return line.Text
	}
}

// AdvanceTime spends EnergyCost and resolves one weighted event. With no
// energy left it returns ErrBlockedByExhaustion and changes nothing.
func (s *Session) AdvanceTime() (EventOutcome, error) {
	s.EnsureInitialized()
	if s.state.Energy <= 0 {
		return EventOutcome{}, ErrBlockedByExhaustion
	}
	s.state.Energy -= EnergyCost

	kind := selectEvent(s.rules, s.state.Role, s.src)
	d := resolveEvent(s.rules, kind, s.state, s.src)
	s.state.apply(d.delta)
	s.appendLog(d.narration, d.severity)

	s.log.Debug("event resolved",
		"event", string(d.kind),
		"currency", s.state.Currency.String(),
		"energy", s.state.Energy,
		"reputation", s.state.Reputation,
	)
	return EventOutcome{
		Event:       d.kind,
		Narration:   d.narration,
		Severity:    d.severity,
		Celebrate:   d.celebrate,
		EnergySpent: EnergyCost,
		Delta:       d.delta,
		Counters:    s.state.Counters(),
	}, nil
}
