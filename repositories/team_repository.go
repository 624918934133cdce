package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/germarr/static-worldcup/models"
)

var (
	ErrTeamNotFound = errors.New("team not found")
	ErrTeamConflict = errors.New("team id or name already exists")
)

type TeamRepository interface {
	Upsert(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	UpdateFlagKey(ctx context.Context, id int, flagKey *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

// Upsert writes reference data with caller-assigned ids; imports are
// re-runnable without wiping the table first.
func (r *postgresTeamRepository) Upsert(ctx context.Context, t *models.Team) error {
	query := `
		INSERT INTO teams (id, name, country_code, group_letter)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, country_code = EXCLUDED.country_code, group_letter = EXCLUDED.group_letter
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, t.ID, t.Name, t.CountryCode, t.GroupLetter).Scan(&t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrTeamConflict
		}
		return fmt.Errorf("upsert team %d: %w", t.ID, err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, country_code, group_letter, flag_key, created_at
		FROM teams WHERE id = $1`

	t := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.CountryCode, &t.GroupLetter, &t.FlagKey, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	query := `
		SELECT id, name, country_code, group_letter, flag_key, created_at
		FROM teams ORDER BY group_letter NULLS LAST, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.CountryCode, &t.GroupLetter, &t.FlagKey, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) UpdateFlagKey(ctx context.Context, id int, flagKey *string) error {
	query := `UPDATE teams SET flag_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, flagKey, id)
	if err != nil {
		return fmt.Errorf("update team %d flag key: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
