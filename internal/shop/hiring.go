package shop

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// HireQuote reports the cost of role and whether hiring it would succeed now.
func (s *Session) HireQuote(role StaffRole) (decimal.Decimal, bool) {
	s.EnsureInitialized()
	spec, ok := LookupStaff(role)
	if !ok || !spec.Hirable {
		return decimal.Zero, false
	}
	if s.state.HasStaff(role) {
		return spec.Cost, false
	}
	return spec.Cost, s.state.Currency.GreaterThanOrEqual(spec.Cost)
}

// Hireable lists catalog roles that are not on staff yet, affordable or not.
func (s *Session) Hireable() []StaffSpec {
	s.EnsureInitialized()
	var out []StaffSpec
	for _, spec := range staffCatalog {
		if spec.Hirable && !s.state.HasStaff(spec.Role) {
			out = append(out, spec)
		}
	}
	return out
}

// Hire is a silent no-op when the role is taken or unaffordable.
func (s *Session) Hire(role StaffRole) bool {
	cost, ok := s.HireQuote(role)
	if !ok {
		s.log.Debug("hire skipped", "role", string(role), "currency", s.state.Currency.String())
		return false
	}
	s.state.Currency = s.state.Currency.Sub(cost)
	s.state.Staff = append(s.state.Staff, role)
	s.appendLog(fmt.Sprintf("Hired a new %s!", role.Title()), SeveritySuccess)
	s.log.Debug("hire", "role", string(role), "cost", cost.String())
	return true
}
