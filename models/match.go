package models

import "time"

// Round identifies a tournament stage. Knockout rounds use the short tags
// that also appear in bracket keys ("r32-5", "sf-1", ...).
type Round string

const (
	RoundGroup      Round = "group"
	RoundOf32       Round = "r32"
	RoundOf16       Round = "r16"
	RoundQuarter    Round = "qf"
	RoundSemi       Round = "sf"
	RoundThirdPlace Round = "tp"
	RoundFinal      Round = "final"
)

// KnockoutRounds lists the built rounds in bracket order. The third-place
// match is derived separately from the semifinal losers.
var KnockoutRounds = []Round{RoundOf32, RoundOf16, RoundQuarter, RoundSemi, RoundFinal}

func (r Round) IsKnockout() bool {
	switch r {
	case RoundOf32, RoundOf16, RoundQuarter, RoundSemi, RoundThirdPlace, RoundFinal:
		return true
	}
	return false
}

// Result is the authoritative outcome of a played match.
type Result struct {
	HomeGoals int  `json:"home_goals" db:"home_goals"`
	AwayGoals int  `json:"away_goals" db:"away_goals"`
	WinnerID  *int `json:"winner_id,omitempty" db:"winner_id"`
	Completed bool `json:"completed" db:"completed"`
}

type Match struct {
	ID          int       `json:"id" db:"id"`
	Number      int       `json:"number" db:"number"`
	Round       Round     `json:"round" db:"round"`
	GroupLetter *string   `json:"group_letter,omitempty" db:"group_letter"`
	HomeTeamID  *int      `json:"home_team_id,omitempty" db:"home_team_id"`
	AwayTeamID  *int      `json:"away_team_id,omitempty" db:"away_team_id"`
	KickoffAt   time.Time `json:"kickoff_at" db:"kickoff_at"`
	StadiumID   int       `json:"stadium_id" db:"stadium_id"`
	Result      *Result   `json:"result,omitempty" db:"-"`

	// Optional linked data, populated by services, not mapped directly.
	HomeTeam *Team    `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team    `json:"away_team,omitempty" db:"-"`
	Stadium  *Stadium `json:"stadium,omitempty" db:"-"`
}
