package domain

import (
	"context"
	"time"

	"secretsanta/internal/santa"
)

// Assignment is a persisted giver→receiver pairing. ViewToken grants the giver
// read access to their assignment without logging in.
// swagger:model Assignment
type Assignment struct {
	ID              string     `json:"id"`
	GroupID         string     `json:"group_id"`
	GiverID         string     `json:"giver_id"`
	ReceiverID      string     `json:"receiver_id"`
	ViewToken       string     `json:"-"`
	EmailSent       bool       `json:"email_sent"`
	LastEmailSentAt *time.Time `json:"last_email_sent_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Pairing returns the engine view of the assignment.
func (a *Assignment) Pairing() santa.Assignment {
	return santa.Assignment{GiverID: a.GiverID, ReceiverID: a.ReceiverID, GroupID: a.GroupID}
}

// Pairings maps stored assignments to engine assignments.
func Pairings(assignments []*Assignment) []santa.Assignment {
	out := make([]santa.Assignment, len(assignments))
	for i, a := range assignments {
		out[i] = a.Pairing()
	}
	return out
}

// AssignmentView is what a giver sees when opening their view link.
// swagger:model AssignmentView
type AssignmentView struct {
	GiverID          string  `json:"giver_id"`
	GiverName        string  `json:"giver_name"`
	ReceiverID       string  `json:"receiver_id"`
	ReceiverName     string  `json:"receiver_name"`
	GroupName        string  `json:"group_name"`
	GroupDescription *string `json:"group_description"`
}

// EmailError records a notification that could not be delivered.
type EmailError struct {
	Participant string `json:"participant"`
	Error       string `json:"error"`
}

// RandomizeResult summarizes a draw.
type RandomizeResult struct {
	AssignmentsCreated int          `json:"assignments_created"`
	EmailErrors        []EmailError `json:"email_errors,omitempty"`
}

// ResendResult summarizes a bulk resend.
type ResendResult struct {
	EmailsSent  int          `json:"emails_sent"`
	EmailErrors []EmailError `json:"email_errors,omitempty"`
}

// AssignmentRepository defines the interface for assignment storage.
type AssignmentRepository interface {
	// CreateBatchAndFinalize stores all assignments and flags the group finalized atomically.
	// It returns ErrGroupFinalized if the group was finalized concurrently.
	CreateBatchAndFinalize(ctx context.Context, groupID string, assignments []*Assignment) error
	ListByGroupID(ctx context.Context, groupID string) ([]*Assignment, error)
	GetByGiver(ctx context.Context, groupID, giverID string) (*Assignment, error)
	GetViewByToken(ctx context.Context, token string) (*AssignmentView, error)
	MarkEmailSent(ctx context.Context, id string, at time.Time) error
}

// AssignmentService runs the draw and notification workflow.
type AssignmentService interface {
	Randomize(ctx context.Context, groupID, ownerID, locale string) (*RandomizeResult, error)
	ResendAll(ctx context.Context, groupID, ownerID, locale string) (*ResendResult, error)
	ResendOne(ctx context.Context, groupID, participantID, ownerID, locale string) (*Participant, error)
	GetByToken(ctx context.Context, token string) (*AssignmentView, error)
}
