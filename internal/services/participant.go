package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"secretsanta/internal/domain"
)

type participantService struct {
	groupRepo       domain.GroupRepository
	participantRepo domain.ParticipantRepository
	contextTimeout  time.Duration
}

func NewParticipantService(groupRepo domain.GroupRepository, participantRepo domain.ParticipantRepository, timeout time.Duration) domain.ParticipantService {
	return &participantService{
		groupRepo:       groupRepo,
		participantRepo: participantRepo,
		contextTimeout:  timeout,
	}
}

// Add registers a participant in a group that has not been drawn yet.
// Emails are stored lowercased and must be unique within the group.
func (s *participantService) Add(ctx context.Context, groupID, ownerID, name, email string) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}

	group, err := ownedGroup(ctx, s.groupRepo, groupID, ownerID)
	if err != nil {
		return nil, err
	}
	if group.IsFinalized {
		return nil, domain.ErrGroupFinalized
	}

	if _, err := s.participantRepo.GetByEmail(ctx, groupID, email); err == nil {
		return nil, domain.ErrDuplicateParticipant
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup participant: %w", err)
	}

	p := domain.NewParticipant(groupID, name, email, time.Now())
	if err := s.participantRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicateParticipant) || errors.Is(err, domain.ErrGroupFinalized) {
			return nil, err
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}
	return p, nil
}

func (s *participantService) Remove(ctx context.Context, groupID, participantID, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	group, err := ownedGroup(ctx, s.groupRepo, groupID, ownerID)
	if err != nil {
		return err
	}
	if group.IsFinalized {
		return domain.ErrGroupFinalized
	}
	if err := s.participantRepo.Delete(ctx, groupID, participantID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrGroupFinalized) {
			return err
		}
		return fmt.Errorf("delete participant: %w", err)
	}
	return nil
}
