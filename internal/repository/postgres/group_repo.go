package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"secretsanta/internal/domain"
)

type groupRepository struct {
	DB *sql.DB
}

func NewGroupRepository(db *sql.DB) domain.GroupRepository {
	return &groupRepository{DB: db}
}

const groupColumns = `
		g.id, g.owner_id, g.name, g.description, g.is_finalized, g.last_email_sent_at, g.created_at, g.updated_at,
		(SELECT COUNT(*) FROM participants p WHERE p.group_id = g.id)
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (*domain.Group, error) {
	g := &domain.Group{}
	var descNull sql.NullString
	var sentNull sql.NullTime
	if err := row.Scan(&g.ID, &g.OwnerID, &g.Name, &descNull, &g.IsFinalized, &sentNull, &g.CreatedAt, &g.UpdatedAt, &g.ParticipantCount); err != nil {
		return nil, err
	}
	if descNull.Valid {
		g.Description = &descNull.String
	}
	if sentNull.Valid {
		g.LastEmailSentAt = &sentNull.Time
	}
	return g, nil
}

func (r *groupRepository) Create(ctx context.Context, g *domain.Group) error {
	query := `
		INSERT INTO groups (owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, g.OwnerID, g.Name, g.Description, g.CreatedAt, g.UpdatedAt).Scan(&g.ID)
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups g WHERE g.id = $1`
	g, err := scanGroup(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups g WHERE g.owner_id = $1 ORDER BY g.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*domain.Group, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupRepository) Update(ctx context.Context, g *domain.Group) error {
	query := `
		UPDATE groups
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4
	`
	res, err := r.DB.ExecContext(ctx, query, g.Name, g.Description, g.UpdatedAt, g.ID)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *groupRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *groupRepository) SetLastEmailSentAt(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE groups SET last_email_sent_at = $1, updated_at = $1 WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, at, id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
