package domain

import (
	"context"
	"time"

	"secretsanta/internal/santa"
)

// Participant is a person taking part in a group's exchange.
// swagger:model Participant
type Participant struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewParticipant returns a new Participant. ID is typically set by the repository on create.
func NewParticipant(groupID, name, email string, createdAt time.Time) *Participant {
	return &Participant{
		GroupID:   groupID,
		Name:      name,
		Email:     email,
		CreatedAt: createdAt,
	}
}

// Roster maps participants to the engine's minimal roster entries.
func Roster(participants []*Participant) []santa.Participant {
	out := make([]santa.Participant, len(participants))
	for i, p := range participants {
		out[i] = santa.Participant{ID: p.ID, GroupID: p.GroupID}
	}
	return out
}

// ParticipantRepository defines the interface for participant storage.
type ParticipantRepository interface {
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, groupID, id string) (*Participant, error)
	GetByEmail(ctx context.Context, groupID, email string) (*Participant, error)
	ListByGroupID(ctx context.Context, groupID string) ([]*Participant, error)
	Delete(ctx context.Context, groupID, id string) error
}

// ParticipantService defines roster management for a group owner.
type ParticipantService interface {
	Add(ctx context.Context, groupID, ownerID, name, email string) (*Participant, error)
	Remove(ctx context.Context, groupID, participantID, ownerID string) error
}
