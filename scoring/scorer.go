// Package scoring compares a stored prediction state against authoritative
// match results. A correct group-stage outcome is worth 1 point, a correct
// knockout winner 2. Matches that are not completed never enter any total.
package scoring

import (
	"sort"

	"github.com/germarr/static-worldcup/brackets"
	"github.com/germarr/static-worldcup/models"
)

const (
	GroupPickPoints    = 1
	KnockoutPickPoints = 2
)

// Summary aggregates a user's score against the results recorded so far.
// MaxPoints sums the weights of completed matches the user actually picked,
// so Points can only fall short of it through wrong picks, and Accuracy is
// correct picks over completed-with-a-pick.
type Summary struct {
	Points    int     `json:"points"`
	MaxPoints int     `json:"max_points"`
	Accuracy  float64 `json:"accuracy"`

	GroupCompleted int `json:"group_completed"`
	GroupScored    int `json:"group_scored"`
	GroupCorrect   int `json:"group_correct"`

	KnockoutCompleted int `json:"knockout_completed"`
	KnockoutScored    int `json:"knockout_scored"`
	KnockoutCorrect   int `json:"knockout_correct"`
}

// Score walks the match list once and tallies the stored picks against every
// completed result. Picks with unrecognized outcome symbols count as no pick.
func Score(matches []models.Match, state *models.PickState) Summary {
	if state == nil {
		state = models.NewPickState()
	}
	state.Normalize()

	var s Summary

	for _, m := range matches {
		if m.Round != models.RoundGroup || m.Result == nil || !m.Result.Completed {
			continue
		}
		s.GroupCompleted++

		pick, ok := state.GroupPicks[m.ID]
		if !ok || !pick.Valid() {
			continue
		}
		s.GroupScored++
		if pick == actualOutcome(m.Result) {
			s.GroupCorrect++
			s.Points += GroupPickPoints
		}
		s.MaxPoints += GroupPickPoints
	}

	for key, m := range knockoutKeys(matches) {
		if m.Result == nil || !m.Result.Completed || m.Result.WinnerID == nil {
			continue
		}
		s.KnockoutCompleted++

		picked, ok := state.KnockoutPicks[key]
		if !ok {
			continue
		}
		s.KnockoutScored++
		if picked == *m.Result.WinnerID {
			s.KnockoutCorrect++
			s.Points += KnockoutPickPoints
		}
		s.MaxPoints += KnockoutPickPoints
	}

	if scored := s.GroupScored + s.KnockoutScored; scored > 0 {
		s.Accuracy = float64(s.GroupCorrect+s.KnockoutCorrect) / float64(scored)
	}
	return s
}

// knockoutKeys maps each knockout match to its bracket key: matches of a
// round take positions in sequence-number order, so the third scheduled
// round-of-16 match answers to "r16-3".
func knockoutKeys(matches []models.Match) map[string]models.Match {
	byRound := map[models.Round][]models.Match{}
	for _, m := range matches {
		if m.Round.IsKnockout() {
			byRound[m.Round] = append(byRound[m.Round], m)
		}
	}

	keyed := make(map[string]models.Match)
	for round, roundMatches := range byRound {
		sort.Slice(roundMatches, func(i, j int) bool {
			return roundMatches[i].Number < roundMatches[j].Number
		})
		for i, m := range roundMatches {
			keyed[brackets.MatchKey(round, i+1)] = m
		}
	}
	return keyed
}

// actualOutcome derives the outcome symbol from the literal final score.
func actualOutcome(r *models.Result) models.Outcome {
	switch {
	case r.HomeGoals > r.AwayGoals:
		return models.OutcomeHome
	case r.HomeGoals < r.AwayGoals:
		return models.OutcomeAway
	default:
		return models.OutcomeDraw
	}
}
