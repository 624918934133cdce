package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/germarr/static-worldcup/models"
)

var ErrStadiumNotFound = errors.New("stadium not found")

type StadiumRepository interface {
	Upsert(ctx context.Context, stadium *models.Stadium) error
	List(ctx context.Context) ([]models.Stadium, error)
}

type postgresStadiumRepository struct {
	db *sql.DB
}

func NewPostgresStadiumRepository(db *sql.DB) StadiumRepository {
	return &postgresStadiumRepository{db: db}
}

func (r *postgresStadiumRepository) Upsert(ctx context.Context, s *models.Stadium) error {
	query := `
		INSERT INTO stadiums (id, name, city, country, capacity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, city = EXCLUDED.city, country = EXCLUDED.country, capacity = EXCLUDED.capacity`

	if _, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.City, s.Country, s.Capacity); err != nil {
		return fmt.Errorf("upsert stadium %d: %w", s.ID, err)
	}
	return nil
}

func (r *postgresStadiumRepository) List(ctx context.Context) ([]models.Stadium, error) {
	query := `SELECT id, name, city, country, capacity FROM stadiums ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stadiums: %w", err)
	}
	defer rows.Close()

	stadiums := []models.Stadium{}
	for rows.Next() {
		var s models.Stadium
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.Country, &s.Capacity); err != nil {
			return nil, fmt.Errorf("scan stadium: %w", err)
		}
		stadiums = append(stadiums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stadiums: %w", err)
	}
	return stadiums, nil
}
