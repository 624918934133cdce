package brackets

import (
	"fmt"

	"github.com/germarr/static-worldcup/models"
)

// Qualifier is a team occupying a bracket slot, tagged with the seed label it
// arrived through ("1A" group winner, "2B" runner-up, "3C" wild card).
type Qualifier struct {
	Seed string        `json:"seed"`
	Row  *StandingsRow `json:"row"`
}

// BracketMatch is one knockout pairing. Key is stable across recomputation
// and is the vocabulary of PickState.KnockoutPicks.
type BracketMatch struct {
	Key          string       `json:"key"`
	Round        models.Round `json:"round"`
	OrderInRound int          `json:"order_in_round"`
	Home         *Qualifier   `json:"home,omitempty"`
	Away         *Qualifier   `json:"away,omitempty"`
	Winner       *Qualifier   `json:"winner,omitempty"`
	Walkover     bool         `json:"walkover,omitempty"`
}

// Bracket is the full derived knockout view.
type Bracket struct {
	Rounds     map[models.Round][]*BracketMatch `json:"rounds"`
	ThirdPlace *BracketMatch                    `json:"third_place"`
}

// MatchKey builds the stable bracket key for a round and 1-based pair index.
func MatchKey(round models.Round, pair int) string {
	return fmt.Sprintf("%s-%d", round, pair)
}

// bracketSize is the fixed number of first-round slots. The bracket shape
// never shrinks with incomplete input; missing qualifiers are empty slots.
const bracketSize = 32

var roundPairs = map[models.Round]int{
	models.RoundOf32:    16,
	models.RoundOf16:    8,
	models.RoundQuarter: 4,
	models.RoundSemi:    2,
	models.RoundFinal:   1,
}

// QualifierList assembles the round-of-32 entrants: group winners in group
// letter order, then runners-up in group letter order, then the advancing
// third-place teams in their reconciled order. Pairing is by raw adjacency in
// this list; there is no tournament-specific seeding chart.
func QualifierList(ordered map[string][]*StandingsRow, thirds []ThirdPlaceRow) []*Qualifier {
	qualifiers := make([]*Qualifier, 0, bracketSize)

	letters := SortedGroupLetters(ordered)
	for _, letter := range letters {
		if group := ordered[letter]; len(group) > 0 {
			qualifiers = append(qualifiers, &Qualifier{Seed: "1" + letter, Row: group[0]})
		}
	}
	for _, letter := range letters {
		if group := ordered[letter]; len(group) > 1 {
			qualifiers = append(qualifiers, &Qualifier{Seed: "2" + letter, Row: group[1]})
		}
	}
	for _, row := range thirds {
		if row.Advances {
			qualifiers = append(qualifiers, &Qualifier{Seed: "3" + row.Group, Row: row.StandingsRow})
		}
	}
	return qualifiers
}

// Build derives the complete bracket from the ordered standings, the
// third-place table, and the stored knockout picks. Picks are only read:
// stale keys stay in the state and are simply unused, so reverting an earlier
// change can resurrect a still-valid pick.
func Build(ordered map[string][]*StandingsRow, thirds []ThirdPlaceRow, picks map[string]int) *Bracket {
	entrants := QualifierList(ordered, thirds)

	current := make([]*Qualifier, bracketSize)
	copy(current, entrants)

	bracket := &Bracket{Rounds: make(map[models.Round][]*BracketMatch, len(models.KnockoutRounds))}

	for _, round := range models.KnockoutRounds {
		pairs := roundPairs[round]
		matches := make([]*BracketMatch, 0, pairs)
		winners := make([]*Qualifier, pairs)

		for i := 0; i < pairs; i++ {
			var home, away *Qualifier
			if 2*i < len(current) {
				home = current[2*i]
			}
			if 2*i+1 < len(current) {
				away = current[2*i+1]
			}
			m := resolveMatch(round, i+1, home, away, picks)
			matches = append(matches, m)
			winners[i] = m.Winner
		}

		bracket.Rounds[round] = matches
		current = winners
	}

	bracket.ThirdPlace = buildThirdPlaceMatch(bracket.Rounds[models.RoundSemi], picks)
	return bracket
}

// resolveMatch applies the winner policy: both slots empty -> pending; one
// slot populated -> walkover; both populated -> the slot matching the stored
// pick, pending when no pick matches.
func resolveMatch(round models.Round, order int, home, away *Qualifier, picks map[string]int) *BracketMatch {
	m := &BracketMatch{
		Key:          MatchKey(round, order),
		Round:        round,
		OrderInRound: order,
		Home:         home,
		Away:         away,
	}

	switch {
	case home == nil && away == nil:
		// pending
	case away == nil:
		m.Winner = home
		m.Walkover = true
	case home == nil:
		m.Winner = away
		m.Walkover = true
	default:
		if picked, ok := picks[m.Key]; ok {
			if home.Row.Team.ID == picked {
				m.Winner = home
			} else if away.Row.Team.ID == picked {
				m.Winner = away
			}
		}
	}
	return m
}

// buildThirdPlaceMatch pairs the semifinal losers under the same walkover and
// pick rules. A semifinal without a decided winner contributes an empty slot.
func buildThirdPlaceMatch(semis []*BracketMatch, picks map[string]int) *BracketMatch {
	var home, away *Qualifier
	if len(semis) > 0 {
		home = loser(semis[0])
	}
	if len(semis) > 1 {
		away = loser(semis[1])
	}
	return resolveMatch(models.RoundThirdPlace, 1, home, away, picks)
}

// loser is the semifinal participant that is not the winner, nil when the
// semifinal is undecided.
func loser(m *BracketMatch) *Qualifier {
	if m == nil || m.Winner == nil {
		return nil
	}
	if m.Home == m.Winner {
		return m.Away
	}
	return m.Home
}
