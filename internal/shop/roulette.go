package shop

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func decideSpin(r Rules, src Source) SpinResult {
	lunch := r.Lunches[src.Intn(len(r.Lunches))]
	cost := decimal.NewFromInt(lunch.Currency)
	return SpinResult{
		Food:          lunch.Food,
		EnergyDelta:   lunch.Energy,
		CurrencyDelta: cost,
		Narration: fmt.Sprintf("🎡 The roulette landed on [%s]! Energy %+d, spent ¥%s",
			lunch.Food, lunch.Energy, cost.Abs().StringFixed(0)),
	}
}

// Spin draws one lunch and applies it without any bounds checks.
func (s *Session) Spin() SpinResult {
	s.EnsureInitialized()
	res := decideSpin(s.rules, s.src)
	s.state.apply(Delta{Currency: res.CurrencyDelta, Energy: res.EnergyDelta})
	s.state.LastLunch = res.Narration
	s.appendLog(res.Narration, SeveritySuccess)
	s.log.Debug("spin", "food", res.Food, "energy", s.state.Energy, "currency", s.state.Currency.String())
	return res
}
