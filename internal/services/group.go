package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"secretsanta/internal/domain"
)

type groupService struct {
	groupRepo       domain.GroupRepository
	participantRepo domain.ParticipantRepository
	assignmentRepo  domain.AssignmentRepository
	contextTimeout  time.Duration
}

func NewGroupService(
	groupRepo domain.GroupRepository,
	participantRepo domain.ParticipantRepository,
	assignmentRepo domain.AssignmentRepository,
	timeout time.Duration,
) domain.GroupService {
	return &groupService{
		groupRepo:       groupRepo,
		participantRepo: participantRepo,
		assignmentRepo:  assignmentRepo,
		contextTimeout:  timeout,
	}
}

// ownedGroup loads a group and checks that ownerID owns it.
func ownedGroup(ctx context.Context, repo domain.GroupRepository, groupID, ownerID string) (*domain.Group, error) {
	group, err := repo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	if group.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return group, nil
}

func normalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	d := strings.TrimSpace(*description)
	if d == "" {
		return nil
	}
	return &d
}

func (s *groupService) Create(ctx context.Context, ownerID, name string, description *string) (*domain.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ownerID == "" {
		return nil, fmt.Errorf("group owner is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	group := domain.NewGroup(ownerID, name, normalizeDescription(description), now, now)
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

func (s *groupService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	groups, err := s.groupRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	if groups == nil {
		groups = []*domain.Group{}
	}
	return groups, nil
}

func (s *groupService) Get(ctx context.Context, groupID, ownerID string) (*domain.GroupDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	group, err := ownedGroup(ctx, s.groupRepo, groupID, ownerID)
	if err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if participants == nil {
		participants = []*domain.Participant{}
	}

	assignments := []*domain.Assignment{}
	if group.IsFinalized {
		assignments, err = s.assignmentRepo.ListByGroupID(ctx, groupID)
		if err != nil {
			return nil, fmt.Errorf("list assignments: %w", err)
		}
		if assignments == nil {
			assignments = []*domain.Assignment{}
		}
	}

	return &domain.GroupDetails{Group: group, Participants: participants, Assignments: assignments}, nil
}

func (s *groupService) Update(ctx context.Context, groupID, ownerID string, name, description *string) (*domain.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	group, err := ownedGroup(ctx, s.groupRepo, groupID, ownerID)
	if err != nil {
		return nil, err
	}
	if group.IsFinalized {
		return nil, domain.ErrGroupFinalized
	}

	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return nil, fmt.Errorf("%w: group name is required", domain.ErrInvalidInput)
		}
		group.Name = n
	}
	if description != nil {
		group.Description = normalizeDescription(description)
	}
	group.UpdatedAt = time.Now()

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}
	return group, nil
}

func (s *groupService) Delete(ctx context.Context, groupID, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := ownedGroup(ctx, s.groupRepo, groupID, ownerID); err != nil {
		return err
	}
	if err := s.groupRepo.Delete(ctx, groupID); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}
