package shop

// Rules are the fixed tables the resolvers draw from. Every Session uses
// DefaultRules; the draw tables are never empty.
type Rules struct {
	Lunches     []Lunch
	Events      []EventWeight
	Personas    map[Persona]PersonaModifier
	BigClient   IntRange
	TheftLoss   IntRange
	RegularSale IntRange
	Dialogue    []FlavorLine
	Heartbreak  []FlavorLine
}

type Lunch struct {
	Food     string
	Energy   int
	Currency int64
}

type EventWeight struct {
	Kind   EventKind
	Weight int
}

// PersonaModifier is added to base event weights; results are clamped at 0.
type PersonaModifier struct {
	Weights         map[EventKind]int
	ReputationBonus int
}

type IntRange struct {
	Min int
	Max int
}

type FlavorLine struct {
	Text       string
	Energy     int
	Reputation int
}

func DefaultRules() Rules {
	return Rules{
		Lunches: []Lunch{
			{Food: "Wagyu banquet", Energy: 50, Currency: -100},
			{Food: "Spicy malatang", Energy: 20, Currency: -25},
			{Food: "Convenience-store onigiri", Energy: 10, Currency: -10},
			{Food: "Skip lunch to save money", Energy: -10, Currency: 0},
			{Food: "Fishmonger's shared bento", Energy: 30, Currency: 0},
		},
		Events: []EventWeight{
			{Kind: EventBigClient, Weight: 10},
			{Kind: EventThief, Weight: 5},
			{Kind: EventBrowsedNoBuy, Weight: 25},
			{Kind: EventRegular, Weight: 40},
			{Kind: EventSpecialDialogue, Weight: 10},
			{Kind: EventHeartbreak, Weight: 10},
		},
		Personas: map[Persona]PersonaModifier{
			PersonaScholar:  {Weights: map[EventKind]int{EventBigClient: 5}},
			PersonaSocial:   {ReputationBonus: 10},
			PersonaHardcore: {Weights: map[EventKind]int{EventThief: -4}},
		},
		BigClient:   IntRange{Min: 500, Max: 2500},
		TheftLoss:   IntRange{Min: 200, Max: 600},
		RegularSale: IntRange{Min: 20, Max: 200},
		Dialogue: []FlavorLine{
			{Text: "Customer: Boss, the decor in here has real taste.", Reputation: 5},
			{Text: "Customer: Why is everything so pricey today?", Reputation: -2},
			{Text: "A food blogger posts a glowing review of the shop.", Reputation: 10},
			{Text: "An old regular stops by just to chat about life."},
		},
		Heartbreak: []FlavorLine{
			{Text: "Someone stole your takeout lunch!", Energy: -15},
			{Text: "The cash register froze again.", Energy: -10},
			{Text: "A malicious complaint was filed against the shop.", Reputation: -10},
		},
	}
}

// eventWeights applies the persona modifier to the base table.
func (r Rules) eventWeights(p Persona) []int {
	mod := r.Personas[p]
	out := make([]int, len(r.Events))
	for i, ev := range r.Events {
		w := ev.Weight + mod.Weights[ev.Kind]
		if w < 0 {
			w = 0
		}
		out[i] = w
	}
	return out
}
