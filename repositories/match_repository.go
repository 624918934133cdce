package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/germarr/static-worldcup/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Upsert(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context) ([]models.Match, error)
	UpdateResult(ctx context.Context, id int, result *models.Result) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, number, round, group_letter, home_team_id, away_team_id,
	kickoff_at, stadium_id, home_goals, away_goals, winner_id, completed`

func (r *postgresMatchRepository) Upsert(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches (id, number, round, group_letter, home_team_id, away_team_id, kickoff_at, stadium_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET number = EXCLUDED.number, round = EXCLUDED.round, group_letter = EXCLUDED.group_letter,
		    home_team_id = EXCLUDED.home_team_id, away_team_id = EXCLUDED.away_team_id,
		    kickoff_at = EXCLUDED.kickoff_at, stadium_id = EXCLUDED.stadium_id`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Number, m.Round, m.GroupLetter, m.HomeTeamID, m.AwayTeamID, m.KickoffAt, m.StadiumID,
	)
	if err != nil {
		return fmt.Errorf("upsert match %d: %w", m.ID, err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	m, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("get match %d: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY number`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	matches := []models.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id int, result *models.Result) error {
	query := `
		UPDATE matches
		SET home_goals = $1, away_goals = $2, winner_id = $3, completed = $4
		WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query,
		result.HomeGoals, result.AwayGoals, result.WinnerID, result.Completed, id,
	)
	if err != nil {
		return fmt.Errorf("update match %d result: %w", id, err)
	}
	return checkAffectedRows(res, ErrMatchNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	m := &models.Match{}
	var homeGoals, awayGoals, winnerID sql.NullInt64
	var completed sql.NullBool

	err := row.Scan(
		&m.ID, &m.Number, &m.Round, &m.GroupLetter, &m.HomeTeamID, &m.AwayTeamID,
		&m.KickoffAt, &m.StadiumID, &homeGoals, &awayGoals, &winnerID, &completed,
	)
	if err != nil {
		return nil, err
	}

	if homeGoals.Valid && awayGoals.Valid {
		m.Result = &models.Result{
			HomeGoals: int(homeGoals.Int64),
			AwayGoals: int(awayGoals.Int64),
			Completed: completed.Valid && completed.Bool,
		}
		if winnerID.Valid {
			id := int(winnerID.Int64)
			m.Result.WinnerID = &id
		}
	}
	return m, nil
}
