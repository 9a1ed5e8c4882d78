package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"secretsanta/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{DB: db}
}

// Create inserts p only while its group is still open for changes. The
// FOR SHARE lock makes the insert wait for a draw that holds the group row and
// re-check the flag once that draw commits.
func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (group_id, name, email, created_at)
		SELECT $1::uuid, $2, $3, $4::timestamptz
		WHERE EXISTS (SELECT 1 FROM groups WHERE id = $1::uuid AND NOT is_finalized FOR SHARE)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, p.GroupID, p.Name, p.Email, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.closedGroupErr(ctx, p.GroupID)
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateParticipant
		}
		return err
	}
	return nil
}

func (r *participantRepository) GetByID(ctx context.Context, groupID, id string) (*domain.Participant, error) {
	query := `
		SELECT id, group_id, name, email, created_at
		FROM participants
		WHERE id = $1 AND group_id = $2
	`
	return r.getOne(ctx, query, id, groupID)
}

func (r *participantRepository) GetByEmail(ctx context.Context, groupID, email string) (*domain.Participant, error) {
	query := `
		SELECT id, group_id, name, email, created_at
		FROM participants
		WHERE group_id = $1 AND email = $2
	`
	return r.getOne(ctx, query, groupID, email)
}

func (r *participantRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Participant, error) {
	p := &domain.Participant{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.GroupID, &p.Name, &p.Email, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) ListByGroupID(ctx context.Context, groupID string) ([]*domain.Participant, error) {
	query := `
		SELECT id, group_id, name, email, created_at
		FROM participants
		WHERE group_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		p := &domain.Participant{}
		if err := rows.Scan(&p.ID, &p.GroupID, &p.Name, &p.Email, &p.CreatedAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// Delete removes a participant from a group that has not been drawn yet.
func (r *participantRepository) Delete(ctx context.Context, groupID, id string) error {
	query := `
		DELETE FROM participants
		WHERE id = $1 AND group_id = $2
		  AND EXISTS (SELECT 1 FROM groups WHERE id = $2 AND NOT is_finalized FOR SHARE)
	`
	res, err := r.DB.ExecContext(ctx, query, id, groupID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.closedGroupErr(ctx, groupID)
	}
	return nil
}

// closedGroupErr explains why a guarded participant write touched no row:
// ErrGroupFinalized when the group was drawn, ErrNotFound otherwise.
func (r *participantRepository) closedGroupErr(ctx context.Context, groupID string) error {
	var finalized bool
	err := r.DB.QueryRowContext(ctx, `SELECT is_finalized FROM groups WHERE id = $1`, groupID).Scan(&finalized)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case err != nil:
		return err
	case finalized:
		return domain.ErrGroupFinalized
	}
	return domain.ErrNotFound
}
