package models

// Outcome is a user's prediction for a group-stage match.
type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeDraw Outcome = "draw"
	OutcomeAway Outcome = "away"
)

// Valid reports whether o is a recognized outcome symbol. Anything else is
// treated as "no pick" by standings and scoring.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeHome, OutcomeDraw, OutcomeAway:
		return true
	}
	return false
}

// PickState is the full prediction state of one user session. The short JSON
// keys keep the encoded share token compact. There is no version field:
// missing fields normalize to empty, unknown data is tolerated.
type PickState struct {
	// GroupPicks maps a group-stage match id to the predicted outcome.
	GroupPicks map[int]Outcome `json:"g,omitempty"`

	// KnockoutPicks maps a bracket key ("r16-3") to the advancing team id.
	// Keys from a bracket shape that no longer exists are kept and ignored.
	KnockoutPicks map[string]int `json:"k,omitempty"`

	// ThirdPlaceOrder is the user's manual ranking of third-place finishers,
	// reconciled against the current candidate set on every read.
	ThirdPlaceOrder []int `json:"t,omitempty"`

	// StandingsOrder maps group letter -> tie-key ("points:gd") -> manual
	// ordering of the teams sharing that tie-key.
	StandingsOrder map[string]map[string][]int `json:"s,omitempty"`
}

func NewPickState() *PickState {
	return &PickState{
		GroupPicks:     map[int]Outcome{},
		KnockoutPicks:  map[string]int{},
		StandingsOrder: map[string]map[string][]int{},
	}
}

// Normalize fills in any absent sub-structures so callers never branch on nil.
func (s *PickState) Normalize() {
	if s.GroupPicks == nil {
		s.GroupPicks = map[int]Outcome{}
	}
	if s.KnockoutPicks == nil {
		s.KnockoutPicks = map[string]int{}
	}
	if s.StandingsOrder == nil {
		s.StandingsOrder = map[string]map[string][]int{}
	}
}

// GroupOverrides returns the override table for a group, creating it on demand.
func (s *PickState) GroupOverrides(group string) map[string][]int {
	s.Normalize()
	m, ok := s.StandingsOrder[group]
	if !ok {
		m = map[string][]int{}
		s.StandingsOrder[group] = m
	}
	return m
}
