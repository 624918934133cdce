package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germarr/static-worldcup/models"
)

func TestComputeGroupStandingsAccumulation(t *testing.T) {
	f := newFixture("A")
	picks := map[int]models.Outcome{}
	// A1 beats A2 and A3, A2 draws A3, A4's matches left unpicked except a loss to A1.
	f.pickWin(picks, 1, 2)
	f.pickWin(picks, 1, 3)
	f.pickWin(picks, 1, 4)
	picks[f.matchBetween(2, 3).ID] = models.OutcomeDraw

	groups := ComputeGroupStandings(f.teams, f.matches, picks, LivePolicy)
	require.Len(t, groups, 1)
	rows := groups["A"]
	require.Len(t, rows, 4)

	byID := map[int]*StandingsRow{}
	for _, r := range rows {
		byID[r.Team.ID] = r
	}

	assert.Equal(t, 3, byID[1].Played)
	assert.Equal(t, 3, byID[1].Wins)
	assert.Equal(t, 9, byID[1].Points)
	assert.Equal(t, 3, byID[1].GoalsFor)
	assert.Equal(t, 0, byID[1].GoalsAgainst)
	assert.Equal(t, 3, byID[1].GoalDifference)

	assert.Equal(t, 2, byID[2].Played)
	assert.Equal(t, 1, byID[2].Draws)
	assert.Equal(t, 1, byID[2].Points)

	// Two of A4's fixtures carry no pick, so only the loss counts.
	assert.Equal(t, 1, byID[4].Played)
	assert.Equal(t, 0, byID[4].Points)
	assert.Equal(t, -1, byID[4].GoalDifference)
}

func TestComputeGroupStandingsConservationLaws(t *testing.T) {
	f := newFixture("A", "B", "C")
	picks := map[int]models.Outcome{}
	outcomes := []models.Outcome{models.OutcomeHome, models.OutcomeDraw, models.OutcomeAway}
	for i, m := range f.matches {
		if i%4 == 3 {
			continue // leave some matches unpicked
		}
		picks[m.ID] = outcomes[i%3]
	}

	groups := ComputeGroupStandings(f.teams, f.matches, picks, LivePolicy)

	for letter, rows := range groups {
		picked := 0
		for _, m := range f.matches {
			if m.GroupLetter != nil && *m.GroupLetter == letter {
				if _, ok := picks[m.ID]; ok {
					picked++
				}
			}
		}
		results := 0
		for _, r := range rows {
			results += r.Wins + r.Draws + r.Losses
			assert.Equal(t, r.GoalsFor-r.GoalsAgainst, r.GoalDifference, "group %s team %d", letter, r.Team.ID)
		}
		// Each picked match contributes a result to exactly two teams.
		assert.Equal(t, 2*picked, results, "group %s", letter)
	}
}

func TestComputeGroupStandingsIgnoresInvalidSymbols(t *testing.T) {
	f := newFixture("A")
	picks := map[int]models.Outcome{
		f.matches[0].ID: models.Outcome("banana"),
		f.matches[1].ID: models.OutcomeHome,
	}

	groups := ComputeGroupStandings(f.teams, f.matches, picks, LivePolicy)

	played := 0
	for _, r := range groups["A"] {
		played += r.Played
	}
	assert.Equal(t, 2, played, "only the valid pick should count")
}

func TestComputeGroupStandingsUnknownTeamIsTBD(t *testing.T) {
	f := newFixture("A")
	ghost := 999
	f.matches[0].AwayTeamID = &ghost
	picks := map[int]models.Outcome{f.matches[0].ID: models.OutcomeHome}

	groups := ComputeGroupStandings(f.teams, f.matches, picks, LivePolicy)

	byID := map[int]*StandingsRow{}
	for _, r := range groups["A"] {
		byID[r.Team.ID] = r
	}
	// The known side still accumulates; the unknown side is simply absent.
	assert.Equal(t, 1, byID[1].Played)
	assert.Equal(t, 3, byID[1].Points)
}

func TestScorePoliciesAgreeOnOrdering(t *testing.T) {
	f := newFixture("A", "B")
	picks := map[int]models.Outcome{}
	outcomes := []models.Outcome{models.OutcomeAway, models.OutcomeHome, models.OutcomeDraw}
	for i, m := range f.matches {
		picks[m.ID] = outcomes[i%3]
	}

	live := ComputeGroupStandings(f.teams, f.matches, picks, LivePolicy)
	print := ComputeGroupStandings(f.teams, f.matches, picks, PrintPolicy)

	for letter := range live {
		liveOrdered, _ := OrderGroup(live[letter], map[string][]int{})
		printOrdered, _ := OrderGroup(print[letter], map[string][]int{})
		require.Equal(t, len(liveOrdered), len(printOrdered))
		for i := range liveOrdered {
			assert.Equal(t, liveOrdered[i].Team.ID, printOrdered[i].Team.ID,
				"policies disagree on rank %d of group %s", i, letter)
			assert.Equal(t, liveOrdered[i].Points, printOrdered[i].Points)
		}
	}
}
