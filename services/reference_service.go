package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/germarr/static-worldcup/models"
	"github.com/germarr/static-worldcup/repositories"
	"github.com/germarr/static-worldcup/storage"
)

// ImportInput is the bulk reference-data payload: the full tournament fixture
// list in one shot.
type ImportInput struct {
	Teams    []models.Team    `json:"teams"`
	Stadiums []models.Stadium `json:"stadiums"`
	Matches  []models.Match   `json:"matches"`
}

type ReferenceService interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListStadiums(ctx context.Context) ([]models.Stadium, error)
	ListMatches(ctx context.Context) ([]models.Match, error)

	Import(ctx context.Context, input ImportInput) error
	UploadTeamFlag(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error)
	RecordResult(ctx context.Context, matchID int, result models.Result) (*models.Match, error)
}

type referenceService struct {
	teamRepo    repositories.TeamRepository
	stadiumRepo repositories.StadiumRepository
	matchRepo   repositories.MatchRepository
	uploader    storage.FileUploader
}

// NewReferenceService wires the reference-data reads and admin mutations.
// uploader may be nil; flag uploads then report ErrFlagStorageUnavailable.
func NewReferenceService(
	teamRepo repositories.TeamRepository,
	stadiumRepo repositories.StadiumRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
) ReferenceService {
	return &referenceService{
		teamRepo:    teamRepo,
		stadiumRepo: stadiumRepo,
		matchRepo:   matchRepo,
		uploader:    uploader,
	}
}

func (s *referenceService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.uploader != nil {
		for i := range teams {
			if teams[i].FlagKey != nil {
				url := s.uploader.GetPublicURL(*teams[i].FlagKey)
				teams[i].FlagURL = &url
			}
		}
	}
	return teams, nil
}

func (s *referenceService) ListStadiums(ctx context.Context) ([]models.Stadium, error) {
	return s.stadiumRepo.List(ctx)
}

func (s *referenceService) ListMatches(ctx context.Context) ([]models.Match, error) {
	return s.matchRepo.List(ctx)
}

// Import upserts the payload: teams and stadiums first, concurrently, then
// the matches that reference them.
func (s *referenceService) Import(ctx context.Context, input ImportInput) error {
	for i := range input.Teams {
		if strings.TrimSpace(input.Teams[i].Name) == "" {
			return fmt.Errorf("%w: team %d has no name", ErrValidationFailed, input.Teams[i].ID)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for i := range input.Teams {
			if err := s.teamRepo.Upsert(gctx, &input.Teams[i]); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for i := range input.Stadiums {
			if err := s.stadiumRepo.Upsert(gctx, &input.Stadiums[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("import reference data: %w", err)
	}

	for i := range input.Matches {
		if err := s.matchRepo.Upsert(ctx, &input.Matches[i]); err != nil {
			return fmt.Errorf("import matches: %w", err)
		}
	}
	return nil
}

func (s *referenceService) UploadTeamFlag(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrFlagStorageUnavailable
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	ext, err := flagExtension(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("flags/team_%d%s", teamID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("upload flag for team %d: %w", teamID, err)
	}

	if team.FlagKey != nil && *team.FlagKey != result.Key {
		// Old asset under a different key; removal failure is not fatal.
		_ = s.uploader.Delete(ctx, *team.FlagKey)
	}

	if err := s.teamRepo.UpdateFlagKey(ctx, teamID, &result.Key); err != nil {
		return nil, err
	}

	team.FlagKey = &result.Key
	team.FlagURL = &result.Location
	return team, nil
}

func (s *referenceService) RecordResult(ctx context.Context, matchID int, result models.Result) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if result.HomeGoals < 0 || result.AwayGoals < 0 {
		return nil, fmt.Errorf("%w: negative goals", ErrInvalidResult)
	}
	if result.WinnerID != nil {
		if !teamPlaysIn(match, *result.WinnerID) {
			return nil, fmt.Errorf("%w: winner %d is not in match %d", ErrInvalidResult, *result.WinnerID, matchID)
		}
	} else if match.Round.IsKnockout() && result.Completed {
		return nil, fmt.Errorf("%w: completed knockout match needs a winner", ErrInvalidResult)
	}

	if err := s.matchRepo.UpdateResult(ctx, matchID, &result); err != nil {
		return nil, err
	}
	match.Result = &result
	return match, nil
}

func teamPlaysIn(m *models.Match, teamID int) bool {
	return (m.HomeTeamID != nil && *m.HomeTeamID == teamID) ||
		(m.AwayTeamID != nil && *m.AwayTeamID == teamID)
}

func flagExtension(contentType string) (string, error) {
	switch contentType {
	case "image/png":
		return ".png", nil
	case "image/svg+xml":
		return ".svg", nil
	case "image/webp":
		return ".webp", nil
	case "image/jpeg":
		return ".jpg", nil
	default:
		return "", fmt.Errorf("%w: unsupported flag content type %q", ErrValidationFailed, contentType)
	}
}
