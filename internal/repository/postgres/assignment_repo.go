package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"secretsanta/internal/domain"
)

type assignmentRepository struct {
	DB *sql.DB
}

func NewAssignmentRepository(db *sql.DB) domain.AssignmentRepository {
	return &assignmentRepository{DB: db}
}

// CreateBatchAndFinalize stores a draw and finalizes its group in one
// transaction. The group row is locked first, so concurrent draws and guarded
// participant writes are serialized behind it. The draw is rejected with
// ErrRosterChanged when its givers are no longer exactly the group's participants.
func (r *assignmentRepository) CreateBatchAndFinalize(ctx context.Context, groupID string, assignments []*domain.Assignment) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var finalized bool
	err = tx.QueryRowContext(ctx, `SELECT is_finalized FROM groups WHERE id = $1 FOR UPDATE`, groupID).Scan(&finalized)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock group: %w", err)
	}
	if finalized {
		return domain.ErrGroupFinalized
	}

	current, err := participantIDs(ctx, tx, groupID)
	if err != nil {
		return fmt.Errorf("list participants: %w", err)
	}
	if !sameGivers(current, assignments) {
		return domain.ErrRosterChanged
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE groups SET is_finalized = TRUE, updated_at = $1 WHERE id = $2`,
		time.Now(), groupID); err != nil {
		return fmt.Errorf("finalize group: %w", err)
	}

	query := `
		INSERT INTO assignments (group_id, giver_id, receiver_id, view_token, email_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	for _, a := range assignments {
		if err = tx.QueryRowContext(ctx, query, a.GroupID, a.GiverID, a.ReceiverID, a.ViewToken, a.EmailSent, a.CreatedAt, a.UpdatedAt).
			Scan(&a.ID); err != nil {
			return fmt.Errorf("insert assignment: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func participantIDs(ctx context.Context, tx *sql.Tx, groupID string) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM participants WHERE group_id = $1`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// sameGivers reports whether every current participant gives exactly once in assignments.
func sameGivers(current map[string]struct{}, assignments []*domain.Assignment) bool {
	if len(current) != len(assignments) {
		return false
	}
	seen := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		if _, ok := current[a.GiverID]; !ok {
			return false
		}
		if _, dup := seen[a.GiverID]; dup {
			return false
		}
		seen[a.GiverID] = struct{}{}
	}
	return true
}

const assignmentColumns = `id, group_id, giver_id, receiver_id, view_token, email_sent, last_email_sent_at, created_at, updated_at`

func scanAssignment(row rowScanner) (*domain.Assignment, error) {
	a := &domain.Assignment{}
	var sentNull sql.NullTime
	if err := row.Scan(&a.ID, &a.GroupID, &a.GiverID, &a.ReceiverID, &a.ViewToken, &a.EmailSent, &sentNull, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if sentNull.Valid {
		a.LastEmailSentAt = &sentNull.Time
	}
	return a, nil
}

func (r *assignmentRepository) ListByGroupID(ctx context.Context, groupID string) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE group_id = $1 ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *assignmentRepository) GetByGiver(ctx context.Context, groupID, giverID string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE group_id = $1 AND giver_id = $2`
	a, err := scanAssignment(r.DB.QueryRowContext(ctx, query, groupID, giverID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *assignmentRepository) GetViewByToken(ctx context.Context, token string) (*domain.AssignmentView, error) {
	query := `
		SELECT giver.id, giver.name, receiver.id, receiver.name, g.name, g.description
		FROM assignments a
		JOIN participants giver ON giver.id = a.giver_id
		JOIN participants receiver ON receiver.id = a.receiver_id
		JOIN groups g ON g.id = a.group_id
		WHERE a.view_token = $1
	`
	v := &domain.AssignmentView{}
	var descNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, token).Scan(&v.GiverID, &v.GiverName, &v.ReceiverID, &v.ReceiverName, &v.GroupName, &descNull)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		v.GroupDescription = &descNull.String
	}
	return v, nil
}

func (r *assignmentRepository) MarkEmailSent(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE assignments SET email_sent = TRUE, last_email_sent_at = $1, updated_at = $1 WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, at, id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}
