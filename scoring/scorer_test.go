package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germarr/static-worldcup/models"
)

func groupMatch(id int, home, away int, result *models.Result) models.Match {
	letter := "A"
	return models.Match{
		ID: id, Number: id, Round: models.RoundGroup, GroupLetter: &letter,
		HomeTeamID: &home, AwayTeamID: &away,
		KickoffAt: time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC),
		StadiumID: 1, Result: result,
	}
}

func knockoutMatch(id int, round models.Round, result *models.Result) models.Match {
	return models.Match{
		ID: id, Number: id, Round: round,
		KickoffAt: time.Date(2026, 7, 4, 18, 0, 0, 0, time.UTC),
		StadiumID: 2, Result: result,
	}
}

func completed(homeGoals, awayGoals int, winnerID *int) *models.Result {
	return &models.Result{HomeGoals: homeGoals, AwayGoals: awayGoals, WinnerID: winnerID, Completed: true}
}

func TestScoreGroupPicks(t *testing.T) {
	matches := []models.Match{
		groupMatch(1, 10, 11, completed(2, 0, nil)),  // home win, picked home
		groupMatch(2, 12, 13, completed(1, 3, nil)),  // away win, picked draw
		groupMatch(3, 10, 12, completed(1, 1, nil)),  // draw, no pick
		groupMatch(4, 11, 13, nil),                   // not completed
		groupMatch(5, 11, 12, completed(0, 2, nil)),  // away win, picked away
	}
	state := &models.PickState{GroupPicks: map[int]models.Outcome{
		1: models.OutcomeHome,
		2: models.OutcomeDraw,
		4: models.OutcomeHome,
		5: models.OutcomeAway,
	}}

	s := Score(matches, state)

	assert.Equal(t, 4, s.GroupCompleted)
	assert.Equal(t, 3, s.GroupScored)
	assert.Equal(t, 2, s.GroupCorrect)
	assert.Equal(t, 2, s.Points)
	assert.Equal(t, 3, s.MaxPoints)
	assert.InDelta(t, 2.0/3.0, s.Accuracy, 1e-9)
}

func TestScoreDrawAgainstHomePickIsWrongNotSkipped(t *testing.T) {
	matches := []models.Match{
		groupMatch(1, 10, 11, completed(2, 2, nil)),
	}
	state := &models.PickState{GroupPicks: map[int]models.Outcome{1: models.OutcomeHome}}

	s := Score(matches, state)

	// A pick was made, so a 2-2 result scores 0 and still counts in the
	// completed-with-a-pick denominator.
	assert.Equal(t, 0, s.Points)
	assert.Equal(t, 1, s.GroupScored)
	assert.Equal(t, 0, s.GroupCorrect)
	assert.Equal(t, 1, s.MaxPoints)
	assert.Zero(t, s.Accuracy)
}

func TestScoreKnockoutPicksByBracketKey(t *testing.T) {
	winner41 := 41
	winner50 := 50
	matches := []models.Match{
		// Out-of-order sequence numbers: keys follow number order per round.
		knockoutMatch(92, models.RoundOf16, completed(2, 1, &winner50)), // r16-2
		knockoutMatch(91, models.RoundOf16, completed(1, 0, &winner41)), // r16-1
		knockoutMatch(93, models.RoundOf16, nil),                        // r16-3, not played
		knockoutMatch(95, models.RoundFinal, completed(1, 1, nil)),      // no winner recorded yet
	}
	state := &models.PickState{KnockoutPicks: map[string]int{
		"r16-1": 41, // correct
		"r16-2": 99, // wrong
		"r16-3": 41, // match not completed, never enters a denominator
	}}

	s := Score(matches, state)

	assert.Equal(t, 2, s.KnockoutCompleted)
	assert.Equal(t, 2, s.KnockoutScored)
	assert.Equal(t, 1, s.KnockoutCorrect)
	assert.Equal(t, KnockoutPickPoints, s.Points)
	assert.Equal(t, 2*KnockoutPickPoints, s.MaxPoints)
	assert.InDelta(t, 0.5, s.Accuracy, 1e-9)
}

func TestScoreInvalidSymbolIsNoPick(t *testing.T) {
	matches := []models.Match{
		groupMatch(1, 10, 11, completed(1, 0, nil)),
	}
	state := &models.PickState{GroupPicks: map[int]models.Outcome{1: models.Outcome("maybe")}}

	s := Score(matches, state)

	assert.Equal(t, 1, s.GroupCompleted)
	assert.Zero(t, s.GroupScored)
	assert.Zero(t, s.MaxPoints)
}

func TestScoreNilState(t *testing.T) {
	matches := []models.Match{
		groupMatch(1, 10, 11, completed(1, 0, nil)),
	}

	s := Score(matches, nil)
	require.Equal(t, 1, s.GroupCompleted)
	assert.Zero(t, s.Points)
	assert.Zero(t, s.Accuracy)
}
