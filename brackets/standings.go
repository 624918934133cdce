package brackets

import (
	"sort"

	"github.com/germarr/static-worldcup/models"
)

// StandingsRow is one team's aggregate record within its group. Rows are
// recomputed from scratch on every pick change, never mutated incrementally.
type StandingsRow struct {
	Team           *models.Team `json:"team"`
	Played         int          `json:"played"`
	Wins           int          `json:"wins"`
	Draws          int          `json:"draws"`
	Losses         int          `json:"losses"`
	GoalsFor       int          `json:"goals_for"`
	GoalsAgainst   int          `json:"goals_against"`
	GoalDifference int          `json:"goal_difference"`
	Points         int          `json:"points"`
}

// ScorePolicy maps an outcome symbol to the literal scoreline credited to the
// home and away team. This is a display convention: both policies produce the
// same points and the same qualification ordering.
type ScorePolicy struct {
	Home [2]int
	Draw [2]int
	Away [2]int
}

var (
	// LivePolicy is the default convention used for standings and scoring.
	LivePolicy = ScorePolicy{Home: [2]int{1, 0}, Draw: [2]int{0, 0}, Away: [2]int{0, 1}}

	// PrintPolicy uses wider literal margins for printable views.
	PrintPolicy = ScorePolicy{Home: [2]int{2, 1}, Draw: [2]int{1, 1}, Away: [2]int{1, 2}}
)

// Scoreline returns the literal (home, away) goals for an outcome, and false
// for unrecognized symbols.
func (p ScorePolicy) Scoreline(o models.Outcome) (int, int, bool) {
	switch o {
	case models.OutcomeHome:
		return p.Home[0], p.Home[1], true
	case models.OutcomeDraw:
		return p.Draw[0], p.Draw[1], true
	case models.OutcomeAway:
		return p.Away[0], p.Away[1], true
	}
	return 0, 0, false
}

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// ComputeGroupStandings accumulates one row per grouped team from the
// group-stage picks. Matches without a recorded pick contribute nothing.
// A match referencing an unknown team id is treated as TBD and skipped for
// that side. No ordering is applied here; see OrderGroup.
func ComputeGroupStandings(teams []models.Team, matches []models.Match, picks map[int]models.Outcome, policy ScorePolicy) map[string][]*StandingsRow {
	rows := make(map[int]*StandingsRow, len(teams))
	groups := map[string][]*StandingsRow{}

	for i := range teams {
		t := &teams[i]
		if t.GroupLetter == nil {
			continue
		}
		row := &StandingsRow{Team: t}
		rows[t.ID] = row
		groups[*t.GroupLetter] = append(groups[*t.GroupLetter], row)
	}

	for _, m := range matches {
		if m.Round != models.RoundGroup || m.HomeTeamID == nil || m.AwayTeamID == nil {
			continue
		}
		outcome, ok := picks[m.ID]
		if !ok {
			continue
		}
		hg, ag, ok := policy.Scoreline(outcome)
		if !ok {
			// Unrecognized symbol behaves as "no pick".
			continue
		}
		if home := rows[*m.HomeTeamID]; home != nil {
			applyScore(home, hg, ag)
		}
		if away := rows[*m.AwayTeamID]; away != nil {
			applyScore(away, ag, hg)
		}
	}

	return groups
}

func applyScore(row *StandingsRow, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst
	switch {
	case scored > conceded:
		row.Wins++
		row.Points += pointsPerWin
	case scored == conceded:
		row.Draws++
		row.Points += pointsPerDraw
	default:
		row.Losses++
	}
}

// sortRowsDefault applies the natural sort key: points desc, goal difference
// desc, goals for desc, then team name asc as the final deterministic break.
func sortRowsDefault(rows []*StandingsRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return lessRowsDefault(rows[i], rows[j])
	})
}

func lessRowsDefault(a, b *StandingsRow) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDifference != b.GoalDifference {
		return a.GoalDifference > b.GoalDifference
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	return a.Team.Name < b.Team.Name
}
