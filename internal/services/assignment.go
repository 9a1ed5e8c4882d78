package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"secretsanta/internal/domain"
	"secretsanta/internal/i18n"
	"secretsanta/internal/santa"
)

type assignmentService struct {
	groupRepo       domain.GroupRepository
	participantRepo domain.ParticipantRepository
	assignmentRepo  domain.AssignmentRepository
	emailService    domain.EmailService
	engine          *santa.Engine
	appBaseURL      string
	defaultLocale   string
	logger          *slog.Logger
	contextTimeout  time.Duration
}

// AssignmentServiceConfig holds the non-repository settings of the assignment workflow.
type AssignmentServiceConfig struct {
	AppBaseURL    string
	DefaultLocale string
	Timeout       time.Duration
}

func NewAssignmentService(
	groupRepo domain.GroupRepository,
	participantRepo domain.ParticipantRepository,
	assignmentRepo domain.AssignmentRepository,
	emailService domain.EmailService,
	engine *santa.Engine,
	cfg AssignmentServiceConfig,
	logger *slog.Logger,
) domain.AssignmentService {
	return &assignmentService{
		groupRepo:       groupRepo,
		participantRepo: participantRepo,
		assignmentRepo:  assignmentRepo,
		emailService:    emailService,
		engine:          engine,
		appBaseURL:      strings.TrimRight(cfg.AppBaseURL, "/"),
		defaultLocale:   i18n.Normalize(cfg.DefaultLocale, ""),
		logger:          logger,
		contextTimeout:  cfg.Timeout,
	}
}

// Randomize draws the group's assignments, stores them, finalizes the group
// and emails every giver. Email failures do not undo the draw; they are
// reported in the result.
func (s *assignmentService) Randomize(ctx context.Context, groupID, ownerID, locale string) (*domain.RandomizeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	group, err := ownedGroup(ctx, s.groupRepo, groupID, ownerID)
	if err != nil {
		return nil, err
	}
	if group.IsFinalized {
		return nil, domain.ErrGroupFinalized
	}

	participants, err := s.participantRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	roster := domain.Roster(participants)

	pairs, err := s.engine.Generate(roster)
	if err != nil {
		switch {
		case errors.Is(err, santa.ErrNotEnoughParticipants):
			return nil, domain.ErrNotEnoughParticipants
		case errors.Is(err, santa.ErrDuplicateParticipant):
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidAssignments, err)
		}
		return nil, fmt.Errorf("generate assignments: %w", err)
	}
	if !santa.Validate(pairs, roster) {
		return nil, domain.ErrInvalidAssignments
	}

	now := time.Now()
	assignments := make([]*domain.Assignment, len(pairs))
	for i, p := range pairs {
		assignments[i] = &domain.Assignment{
			GroupID:    groupID,
			GiverID:    p.GiverID,
			ReceiverID: p.ReceiverID,
			ViewToken:  uuid.NewString(),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}
	if err := s.assignmentRepo.CreateBatchAndFinalize(ctx, groupID, assignments); err != nil {
		if errors.Is(err, domain.ErrGroupFinalized) || errors.Is(err, domain.ErrRosterChanged) {
			return nil, err
		}
		return nil, fmt.Errorf("save assignments: %w", err)
	}

	_, emailErrors := s.notifyAll(ctx, group, participants, assignments, locale)
	return &domain.RandomizeResult{
		AssignmentsCreated: len(assignments),
		EmailErrors:        emailErrors,
	}, nil
}

// ResendAll re-sends every giver their assignment email.
func (s *assignmentService) ResendAll(ctx context.Context, groupID, ownerID, locale string) (*domain.ResendResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	group, err := ownedGroup(ctx, s.groupRepo, groupID, ownerID)
	if err != nil {
		return nil, err
	}
	if !group.IsFinalized {
		return nil, domain.ErrGroupNotFinalized
	}

	participants, err := s.participantRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	assignments, err := s.assignmentRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	if !santa.Validate(domain.Pairings(assignments), domain.Roster(participants)) {
		return nil, domain.ErrInvalidAssignments
	}

	sent, emailErrors := s.notifyAll(ctx, group, participants, assignments, locale)
	if err := s.groupRepo.SetLastEmailSentAt(ctx, groupID, time.Now()); err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}
	return &domain.ResendResult{EmailsSent: sent, EmailErrors: emailErrors}, nil
}

// ResendOne re-sends a single giver their assignment email and returns that giver.
func (s *assignmentService) ResendOne(ctx context.Context, groupID, participantID, ownerID, locale string) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	group, err := ownedGroup(ctx, s.groupRepo, groupID, ownerID)
	if err != nil {
		return nil, err
	}
	if !group.IsFinalized {
		return nil, domain.ErrGroupNotFinalized
	}

	giver, err := s.participantRepo.GetByID(ctx, groupID, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	assignment, err := s.assignmentRepo.GetByGiver(ctx, groupID, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	receiver, err := s.participantRepo.GetByID(ctx, groupID, assignment.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("get receiver: %w", err)
	}

	if err := s.emailService.SendAssignment(ctx, s.emailData(group, giver, receiver, assignment, locale)); err != nil {
		return nil, fmt.Errorf("send assignment email: %w", err)
	}
	if err := s.assignmentRepo.MarkEmailSent(ctx, assignment.ID, time.Now()); err != nil {
		return nil, fmt.Errorf("mark email sent: %w", err)
	}
	return giver, nil
}

// GetByToken resolves a giver's view link.
func (s *assignmentService) GetByToken(ctx context.Context, token string) (*domain.AssignmentView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrNotFound
	}
	view, err := s.assignmentRepo.GetViewByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get assignment view: %w", err)
	}
	return view, nil
}

// notifyAll emails each giver and marks the assignment as sent. It returns
// the number of delivered emails and one EmailError per failure.
func (s *assignmentService) notifyAll(ctx context.Context, group *domain.Group, participants []*domain.Participant, assignments []*domain.Assignment, locale string) (int, []domain.EmailError) {
	byID := make(map[string]*domain.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	sent := 0
	var emailErrors []domain.EmailError
	for _, a := range assignments {
		giver, receiver := byID[a.GiverID], byID[a.ReceiverID]
		if giver == nil || receiver == nil {
			continue
		}
		if err := s.emailService.SendAssignment(ctx, s.emailData(group, giver, receiver, a, locale)); err != nil {
			s.logger.WarnContext(ctx, "assignment email failed", "group_id", group.ID, "participant_id", giver.ID, "err", err)
			emailErrors = append(emailErrors, domain.EmailError{Participant: giver.Name, Error: err.Error()})
			continue
		}
		sent++
		if err := s.assignmentRepo.MarkEmailSent(ctx, a.ID, time.Now()); err != nil {
			s.logger.ErrorContext(ctx, "mark email sent failed", "assignment_id", a.ID, "err", err)
		}
	}
	return sent, emailErrors
}

func (s *assignmentService) emailData(group *domain.Group, giver, receiver *domain.Participant, a *domain.Assignment, locale string) *domain.AssignmentEmailData {
	locale = i18n.Normalize(locale, s.defaultLocale)
	var viewURL string
	if a.ViewToken != "" {
		viewURL = fmt.Sprintf("%s/%s/assignment/%s", s.appBaseURL, locale, a.ViewToken)
	}
	return &domain.AssignmentEmailData{
		GiverName:    giver.Name,
		GiverEmail:   giver.Email,
		ReceiverName: receiver.Name,
		GroupName:    group.Name,
		Locale:       locale,
		ViewURL:      viewURL,
	}
}
