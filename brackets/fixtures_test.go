package brackets

import (
	"fmt"
	"time"

	"github.com/germarr/static-worldcup/models"
)

// fixture builds reference data for tests: four teams per group and the six
// round-robin fixtures each group plays.
type fixture struct {
	teams   []models.Team
	matches []models.Match
}

var roundRobinPairs = [][2]int{{0, 1}, {2, 3}, {0, 2}, {1, 3}, {0, 3}, {1, 2}}

func newFixture(letters ...string) *fixture {
	f := &fixture{}
	matchID := 1
	for gi, letter := range letters {
		letter := letter
		ids := make([]int, 4)
		for ti := 0; ti < 4; ti++ {
			id := gi*4 + ti + 1
			ids[ti] = id
			f.teams = append(f.teams, models.Team{
				ID:          id,
				Name:        fmt.Sprintf("Team %s%d", letter, ti+1),
				CountryCode: fmt.Sprintf("%s%d", letter, ti+1),
				GroupLetter: &letter,
			})
		}
		for _, pair := range roundRobinPairs {
			home, away := ids[pair[0]], ids[pair[1]]
			f.matches = append(f.matches, models.Match{
				ID:          matchID,
				Number:      matchID,
				Round:       models.RoundGroup,
				GroupLetter: &letter,
				HomeTeamID:  &home,
				AwayTeamID:  &away,
				KickoffAt:   time.Date(2026, 6, 11, 12, 0, 0, 0, time.UTC).Add(time.Duration(matchID) * time.Hour),
				StadiumID:   1,
			})
			matchID++
		}
	}
	return f
}

// matchBetween finds the group fixture between two team ids, in either order.
func (f *fixture) matchBetween(a, b int) *models.Match {
	for i := range f.matches {
		m := &f.matches[i]
		if m.HomeTeamID == nil || m.AwayTeamID == nil {
			continue
		}
		if (*m.HomeTeamID == a && *m.AwayTeamID == b) || (*m.HomeTeamID == b && *m.AwayTeamID == a) {
			return m
		}
	}
	return nil
}

// pickWin records a pick that makes winner beat loser.
func (f *fixture) pickWin(picks map[int]models.Outcome, winner, loser int) {
	m := f.matchBetween(winner, loser)
	if *m.HomeTeamID == winner {
		picks[m.ID] = models.OutcomeHome
	} else {
		picks[m.ID] = models.OutcomeAway
	}
}

// row builds a synthetic standings row for ranker and builder tests.
func row(id int, name string, points, gd, gf int) *StandingsRow {
	return &StandingsRow{
		Team:           &models.Team{ID: id, Name: name},
		Points:         points,
		GoalDifference: gd,
		GoalsFor:       gf,
		GoalsAgainst:   gf - gd,
	}
}
