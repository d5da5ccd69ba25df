package sessions

import (
	"shopkeep/internal/shop"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type View struct {
	ID         uuid.UUID        `json:"id"`
	Preset     string           `json:"preset"`
	Role       shop.Persona     `json:"role"`
	RoleTitle  string           `json:"role_title"`
	Currency   decimal.Decimal  `json:"currency"`
	Energy     int              `json:"energy"`
	Reputation int              `json:"reputation"`
	Staff      []shop.StaffRole `json:"staff"`
	LastLunch  string           `json:"last_lunch"`
	Log        []shop.LogEntry  `json:"log"`
	Bankrupt   bool             `json:"bankrupt"`
	Hireable   []HireOption     `json:"hireable"`
}

type HireOption struct {
	Role       shop.StaffRole  `json:"role"`
	Title      string          `json:"title"`
	Cost       decimal.Decimal `json:"cost"`
	Affordable bool            `json:"affordable"`
}

func (r *Registry) view(id uuid.UUID, s *shop.Session) View {
	st := s.Snapshot()
	v := View{
		ID:         id,
		Preset:     s.Preset().Name,
		Role:       st.Role,
		Currency:   st.Currency,
		Energy:     st.Energy,
		Reputation: st.Reputation,
		Staff:      st.Staff,
		LastLunch:  st.LastLunch,
		Log:        s.VisibleLog(r.opts.LogWindow),
		Bankrupt:   s.IsBankrupt(),
		Hireable:   []HireOption{},
	}
	if st.Role != shop.PersonaNone {
		v.RoleTitle = st.Role.Title()
	}
	for _, spec := range s.Hireable() {
		_, ok := s.HireQuote(spec.Role)
		v.Hireable = append(v.Hireable, HireOption{
			Role:       spec.Role,
			Title:      spec.Title,
			Cost:       spec.Cost,
			Affordable: ok,
		})
	}
	return v
}

type PersonaOption struct {
	Persona shop.Persona `json:"persona"`
	Title   string       `json:"title"`
	Blurb   string       `json:"blurb"`
}

type Catalog struct {
	Personas []PersonaOption  `json:"personas"`
	Staff    []shop.StaffSpec `json:"staff"`
}

func NewCatalog() Catalog {
	c := Catalog{Staff: shop.StaffCatalog()}
	for _, p := range shop.Personas {
		c.Personas = append(c.Personas, PersonaOption{Persona: p, Title: p.Title(), Blurb: p.Blurb()})
	}
	return c
}
