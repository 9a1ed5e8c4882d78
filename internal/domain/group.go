package domain

import (
	"context"
	"time"
)

// Group is a gift exchange owned by one organizer.
// swagger:model Group
type Group struct {
	ID               string     `json:"id"`
	OwnerID          string     `json:"owner_id"`
	Name             string     `json:"name"`
	Description      *string    `json:"description"`
	IsFinalized      bool       `json:"is_finalized"`
	LastEmailSentAt  *time.Time `json:"last_email_sent_at"`
	ParticipantCount int        `json:"participant_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewGroup returns a new Group with the given fields. ID is typically set by the repository on create.
func NewGroup(ownerID, name string, description *string, createdAt, updatedAt time.Time) *Group {
	return &Group{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// GroupDetails bundles a group with its roster and drawn assignments.
type GroupDetails struct {
	Group        *Group         `json:"group"`
	Participants []*Participant `json:"participants"`
	Assignments  []*Assignment  `json:"assignments"`
}

// GroupRepository defines the interface for group storage.
type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Group, error)
	Update(ctx context.Context, group *Group) error
	Delete(ctx context.Context, id string) error
	SetLastEmailSentAt(ctx context.Context, id string, at time.Time) error
}

// GroupService defines organizer-facing group operations. ownerID is the authenticated caller.
type GroupService interface {
	Create(ctx context.Context, ownerID, name string, description *string) (*Group, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Group, error)
	Get(ctx context.Context, groupID, ownerID string) (*GroupDetails, error)
	Update(ctx context.Context, groupID, ownerID string, name, description *string) (*Group, error)
	Delete(ctx context.Context, groupID, ownerID string) error
}
