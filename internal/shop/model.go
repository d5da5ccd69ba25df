package shop

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	EnergyCost        = 10
	DefaultLogWindow  = 8
	FallbackIcon      = "❔"
	DefaultLunchBlurb = "Haven't eaten yet, give the roulette a spin!"
)

var ErrBlockedByExhaustion = errors.New("manager is exhausted: spin the lunch roulette first")

type Persona string

const (
	PersonaNone     Persona = ""
	PersonaScholar  Persona = "scholar"
	PersonaSocial   Persona = "social"
	PersonaHardcore Persona = "hardcore"
)

var Personas = []Persona{PersonaScholar, PersonaSocial, PersonaHardcore}

func ParsePersona(s string) (Persona, bool) {
	p := Persona(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Personas {
		if p == known {
			return p, true
		}
	}
	return PersonaNone, false
}

func (p Persona) Title() string {
	switch p {
	case PersonaScholar:
		return "Literary manager"
	case PersonaSocial:
		return "Workhorse manager"
	case PersonaHardcore:
		return "Hardcore manager"
	default:
		return "No persona"
	}
}

func (p Persona) Blurb() string {
	switch p {
	case PersonaScholar:
		return "silver tongue, from moonlit poetry to philosophy of life"
	case PersonaSocial:
		return "big-corp background, thrives on overtime"
	case PersonaHardcore:
		return "sharp stare, carries a fishmonger's aura"
	default:
		return ""
	}
}

type StaffRole string

const (
	StaffOwner      StaffRole = "owner"
	StaffCashier    StaffRole = "cashier"
	StaffCleaner    StaffRole = "cleaner"
	StaffGuard      StaffRole = "guard"
	StaffClerk      StaffRole = "clerk"
	StaffFishmonger StaffRole = "fishmonger"
)

// StaffSpec is one row of the fixed staff catalog.
type StaffSpec struct {
	Role      StaffRole       `json:"role"`
	Title     string          `json:"title"`
	Cost      decimal.Decimal `json:"cost"`
	Hirable   bool            `json:"hirable"`
	Deterrent bool            `json:"deterrent"`
}

var staffCatalog = []StaffSpec{
	{Role: StaffOwner, Title: "Owner Xiaoyu", Cost: decimal.Zero},
	{Role: StaffCashier, Title: "Cashier", Cost: decimal.NewFromInt(120), Hirable: true},
	{Role: StaffCleaner, Title: "Cleaner", Cost: decimal.NewFromInt(100), Hirable: true},
	{Role: StaffGuard, Title: "Security guard", Cost: decimal.NewFromInt(200), Hirable: true, Deterrent: true},
	{Role: StaffClerk, Title: "Sales clerk", Cost: decimal.NewFromInt(150), Hirable: true},
	{Role: StaffFishmonger, Title: "Ex-supermarket fishmonger", Cost: decimal.NewFromInt(500), Hirable: true, Deterrent: true},
}

func StaffCatalog() []StaffSpec {
	out := make([]StaffSpec, len(staffCatalog))
	copy(out, staffCatalog)
	return out
}

func LookupStaff(role StaffRole) (StaffSpec, bool) {
	for _, spec := range staffCatalog {
		if spec.Role == role {
			return spec, true
		}
	}
	return StaffSpec{}, false
}

func ParseStaffRole(s string) (StaffRole, bool) {
	role := StaffRole(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := LookupStaff(role); !ok {
		return "", false
	}
	return role, true
}

func (r StaffRole) Title() string {
	if spec, ok := LookupStaff(r); ok {
		return spec.Title
	}
	return string(r)
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

var severityIcons = map[Severity]string{
	SeverityInfo:    "💬",
	SeveritySuccess: "✨",
	SeverityWarning: "🔔",
	SeverityDanger:  "🔥",
}

// Icon never fails: unrecognized severities render as FallbackIcon.
func (s Severity) Icon() string {
	if icon, ok := severityIcons[s]; ok {
		return icon
	}
	return FallbackIcon
}

type EventKind string

const (
	EventBigClient       EventKind = "big_client"
	EventThief           EventKind = "thief"
	EventBrowsedNoBuy    EventKind = "browsed_no_buy"
	EventRegular         EventKind = "regular"
	EventSpecialDialogue EventKind = "special_dialogue"
	EventHeartbreak      EventKind = "heartbreak"
)
