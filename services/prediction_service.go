package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/germarr/static-worldcup/brackets"
	"github.com/germarr/static-worldcup/codec"
	"github.com/germarr/static-worldcup/models"
	"github.com/germarr/static-worldcup/repositories"
	"github.com/germarr/static-worldcup/scoring"
)

// PredictionView is everything a rendering layer needs for one prediction
// state: ordered standings, the third-place table, the full bracket, and the
// re-encoded token carrying any self-healed overrides.
type PredictionView struct {
	Standings  map[string][]*brackets.StandingsRow `json:"standings"`
	ThirdPlace []brackets.ThirdPlaceRow            `json:"third_place"`
	Bracket    *brackets.Bracket                   `json:"bracket"`

	// Token is the canonical encoding of the (possibly reconciled) state.
	// Healed is true when reconciliation changed the stored orders, meaning
	// the caller should persist Token in place of the one it sent.
	Token  string `json:"token"`
	Healed bool   `json:"healed"`
}

type PredictionService interface {
	View(ctx context.Context, token string) (*PredictionView, error)
	Score(ctx context.Context, token string) (*scoring.Summary, error)
}

type predictionService struct {
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
}

func NewPredictionService(teamRepo repositories.TeamRepository, matchRepo repositories.MatchRepository) PredictionService {
	return &predictionService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
	}
}

// View decodes a token and derives every view from scratch. Computation is
// pure and re-runs completely; only the returned token carries state.
func (s *predictionService) View(ctx context.Context, token string) (*PredictionView, error) {
	state, err := decodeToken(token)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	view, err := Derive(teams, matches, state)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Derive runs the whole engine pipeline over already-loaded reference data.
// Exposed for handlers and tests that hold the data themselves.
func Derive(teams []models.Team, matches []models.Match, state *models.PickState) (*PredictionView, error) {
	state.Normalize()

	groups := brackets.ComputeGroupStandings(teams, matches, state.GroupPicks, brackets.LivePolicy)

	healed := false
	ordered := make(map[string][]*brackets.StandingsRow, len(groups))
	for _, letter := range brackets.SortedGroupLetters(groups) {
		rows, changed := brackets.OrderGroup(groups[letter], state.GroupOverrides(letter))
		ordered[letter] = rows
		if changed {
			healed = true
		}
	}

	thirds, thirdOrder, changed := brackets.RankThirdPlace(ordered, state.ThirdPlaceOrder)
	state.ThirdPlaceOrder = thirdOrder
	if changed {
		healed = true
	}

	bracket := brackets.Build(ordered, thirds, state.KnockoutPicks)

	token, err := codec.Encode(state)
	if err != nil {
		return nil, fmt.Errorf("re-encode state: %w", err)
	}

	return &PredictionView{
		Standings:  ordered,
		ThirdPlace: thirds,
		Bracket:    bracket,
		Token:      token,
		Healed:     healed,
	}, nil
}

func (s *predictionService) Score(ctx context.Context, token string) (*scoring.Summary, error) {
	state, err := decodeToken(token)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	summary := scoring.Score(matches, state)
	return &summary, nil
}

func decodeToken(token string) (*models.PickState, error) {
	state, err := codec.Decode(token)
	if err != nil {
		if errors.Is(err, codec.ErrInvalidToken) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPredictionToken, err)
		}
		return nil, err
	}
	return state, nil
}
