package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/germarr/static-worldcup/models"
)

var (
	ErrPoolNotFound       = errors.New("pool not found")
	ErrPoolCodeConflict   = errors.New("pool code already exists")
	ErrMemberNotFound     = errors.New("pool member not found")
	ErrMemberNameConflict = errors.New("display name is already taken in this pool")
)

type PoolRepository interface {
	Create(ctx context.Context, pool *models.Pool) error
	GetByCode(ctx context.Context, code string) (*models.Pool, error)
	Delete(ctx context.Context, id int) error

	AddMember(ctx context.Context, member *models.PoolMember) error
	GetMember(ctx context.Context, poolID int, displayName string) (*models.PoolMember, error)
	ListMembers(ctx context.Context, poolID int, limit int) ([]models.PoolMember, error)
	UpdateMemberBracket(ctx context.Context, memberID int, bracketData string) error
	DeleteMember(ctx context.Context, memberID int) error
}

type postgresPoolRepository struct {
	db *sql.DB
}

func NewPostgresPoolRepository(db *sql.DB) PoolRepository {
	return &postgresPoolRepository{db: db}
}

func (r *postgresPoolRepository) Create(ctx context.Context, p *models.Pool) error {
	query := `
		INSERT INTO pools (code, name, creator_token_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, p.Code, p.Name, p.CreatorTokenHash).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrPoolCodeConflict
		}
		return fmt.Errorf("create pool: %w", err)
	}
	return nil
}

func (r *postgresPoolRepository) GetByCode(ctx context.Context, code string) (*models.Pool, error) {
	query := `SELECT id, code, name, creator_token_hash, created_at FROM pools WHERE code = $1`

	p := &models.Pool{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(&p.ID, &p.Code, &p.Name, &p.CreatorTokenHash, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPoolNotFound
		}
		return nil, fmt.Errorf("get pool %q: %w", code, err)
	}
	return p, nil
}

// Delete removes the pool; members go with it via ON DELETE CASCADE.
func (r *postgresPoolRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pool %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPoolNotFound)
}

func (r *postgresPoolRepository) AddMember(ctx context.Context, m *models.PoolMember) error {
	query := `
		INSERT INTO pool_members (pool_id, display_name, bracket_data, member_token_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, joined_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, m.PoolID, m.DisplayName, m.BracketData, m.TokenHash).
		Scan(&m.ID, &m.JoinedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_pool_display_name") {
			return ErrMemberNameConflict
		}
		return fmt.Errorf("add pool member: %w", err)
	}
	return nil
}

func (r *postgresPoolRepository) GetMember(ctx context.Context, poolID int, displayName string) (*models.PoolMember, error) {
	query := `
		SELECT id, pool_id, display_name, bracket_data, member_token_hash, joined_at, updated_at
		FROM pool_members WHERE pool_id = $1 AND display_name = $2`

	m := &models.PoolMember{}
	err := r.db.QueryRowContext(ctx, query, poolID, displayName).Scan(
		&m.ID, &m.PoolID, &m.DisplayName, &m.BracketData, &m.TokenHash, &m.JoinedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("get pool member %q: %w", displayName, err)
	}
	return m, nil
}

func (r *postgresPoolRepository) ListMembers(ctx context.Context, poolID int, limit int) ([]models.PoolMember, error) {
	query := `
		SELECT id, pool_id, display_name, bracket_data, member_token_hash, joined_at, updated_at
		FROM pool_members WHERE pool_id = $1 ORDER BY joined_at LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, poolID, limit)
	if err != nil {
		return nil, fmt.Errorf("list pool members: %w", err)
	}
	defer rows.Close()

	members := []models.PoolMember{}
	for rows.Next() {
		var m models.PoolMember
		if err := rows.Scan(&m.ID, &m.PoolID, &m.DisplayName, &m.BracketData, &m.TokenHash, &m.JoinedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pool member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pool members: %w", err)
	}
	return members, nil
}

func (r *postgresPoolRepository) UpdateMemberBracket(ctx context.Context, memberID int, bracketData string) error {
	query := `UPDATE pool_members SET bracket_data = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, bracketData, memberID)
	if err != nil {
		return fmt.Errorf("update member %d bracket: %w", memberID, err)
	}
	return checkAffectedRows(result, ErrMemberNotFound)
}

func (r *postgresPoolRepository) DeleteMember(ctx context.Context, memberID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pool_members WHERE id = $1`, memberID)
	if err != nil {
		return fmt.Errorf("delete member %d: %w", memberID, err)
	}
	return checkAffectedRows(result, ErrMemberNotFound)
}
