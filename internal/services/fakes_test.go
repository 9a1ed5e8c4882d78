package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"secretsanta/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testTimeout = 5 * time.Second

// fakeGroupRepo is an in-memory GroupRepository for tests.
type fakeGroupRepo struct {
	byID      map[string]*domain.Group
	nextID    int
	createErr error
	getErr    error
	lastSent  map[string]time.Time
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{byID: map[string]*domain.Group{}, nextID: 1, lastSent: map[string]time.Time{}}
}

func (f *fakeGroupRepo) add(g *domain.Group) *domain.Group {
	if g.ID == "" {
		g.ID = fmt.Sprintf("group-%d", f.nextID)
		f.nextID++
	}
	f.byID[g.ID] = g
	return g
}

func (f *fakeGroupRepo) Create(ctx context.Context, g *domain.Group) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(g)
	return nil
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if g, ok := f.byID[id]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGroupRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Group, error) {
	var out []*domain.Group
	for _, g := range f.byID {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGroupRepo) Update(ctx context.Context, g *domain.Group) error {
	if _, ok := f.byID[g.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[g.ID] = g
	return nil
}

func (f *fakeGroupRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeGroupRepo) SetLastEmailSentAt(ctx context.Context, id string, at time.Time) error {
	g, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	g.LastEmailSentAt = &at
	f.lastSent[id] = at
	return nil
}

// fakeParticipantRepo is an in-memory ParticipantRepository for tests. When groups
// is set, writes to a finalized group fail like the guarded SQL does.
type fakeParticipantRepo struct {
	groups    *fakeGroupRepo
	items     []*domain.Participant
	nextID    int
	createErr error
	listErr   error
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{nextID: 1}
}

// seed adds n participants named Person 1..n to groupID.
func (f *fakeParticipantRepo) seed(groupID string, n int) []*domain.Participant {
	var out []*domain.Participant
	for i := 0; i < n; i++ {
		p := domain.NewParticipant(groupID, fmt.Sprintf("Person %d", f.nextID), fmt.Sprintf("person%d@example.com", f.nextID), time.Now())
		_ = f.Create(context.Background(), p)
		out = append(out, p)
	}
	return out
}

func (f *fakeParticipantRepo) Create(ctx context.Context, p *domain.Participant) error {
	if f.createErr != nil {
		return f.createErr
	}
	if err := f.guard(p.GroupID); err != nil {
		return err
	}
	p.ID = fmt.Sprintf("p-%d", f.nextID)
	f.nextID++
	f.items = append(f.items, p)
	return nil
}

func (f *fakeParticipantRepo) GetByID(ctx context.Context, groupID, id string) (*domain.Participant, error) {
	for _, p := range f.items {
		if p.GroupID == groupID && p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) GetByEmail(ctx context.Context, groupID, email string) (*domain.Participant, error) {
	for _, p := range f.items {
		if p.GroupID == groupID && p.Email == email {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) ListByGroupID(ctx context.Context, groupID string) ([]*domain.Participant, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*domain.Participant{}
	for _, p := range f.items {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) Delete(ctx context.Context, groupID, id string) error {
	if err := f.guard(groupID); err != nil {
		return err
	}
	for i, p := range f.items {
		if p.GroupID == groupID && p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeParticipantRepo) guard(groupID string) error {
	if f.groups == nil {
		return nil
	}
	g, ok := f.groups.byID[groupID]
	if !ok {
		return domain.ErrNotFound
	}
	if g.IsFinalized {
		return domain.ErrGroupFinalized
	}
	return nil
}

// fakeAssignmentRepo is an in-memory AssignmentRepository that finalizes groups held by groups.
type fakeAssignmentRepo struct {
	groups       *fakeGroupRepo
	participants *fakeParticipantRepo
	items     []*domain.Assignment
	nextID    int
	createErr error
	marked    []string
}

func newFakeAssignmentRepo(groups *fakeGroupRepo) *fakeAssignmentRepo {
	return &fakeAssignmentRepo{groups: groups, nextID: 1}
}

func (f *fakeAssignmentRepo) CreateBatchAndFinalize(ctx context.Context, groupID string, assignments []*domain.Assignment) error {
	if f.createErr != nil {
		return f.createErr
	}
	g, ok := f.groups.byID[groupID]
	if !ok {
		return domain.ErrNotFound
	}
	if g.IsFinalized {
		return domain.ErrGroupFinalized
	}
	if f.participants != nil {
		current, _ := f.participants.ListByGroupID(ctx, groupID)
		givers := map[string]bool{}
		for _, a := range assignments {
			givers[a.GiverID] = true
		}
		if len(current) != len(assignments) || len(givers) != len(assignments) {
			return domain.ErrRosterChanged
		}
		for _, p := range current {
			if !givers[p.ID] {
				return domain.ErrRosterChanged
			}
		}
	}
	g.IsFinalized = true
	for _, a := range assignments {
		a.ID = fmt.Sprintf("a-%d", f.nextID)
		f.nextID++
		f.items = append(f.items, a)
	}
	return nil
}

func (f *fakeAssignmentRepo) ListByGroupID(ctx context.Context, groupID string) ([]*domain.Assignment, error) {
	out := []*domain.Assignment{}
	for _, a := range f.items {
		if a.GroupID == groupID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) GetByGiver(ctx context.Context, groupID, giverID string) (*domain.Assignment, error) {
	for _, a := range f.items {
		if a.GroupID == groupID && a.GiverID == giverID {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAssignmentRepo) GetViewByToken(ctx context.Context, token string) (*domain.AssignmentView, error) {
	for _, a := range f.items {
		if a.ViewToken == token {
			return &domain.AssignmentView{GiverID: a.GiverID, ReceiverID: a.ReceiverID}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAssignmentRepo) MarkEmailSent(ctx context.Context, id string, at time.Time) error {
	for _, a := range f.items {
		if a.ID == id {
			a.EmailSent = true
			a.LastEmailSentAt = &at
			f.marked = append(f.marked, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeEmailService records SendAssignment calls. failFor lists giver emails that fail.
type fakeEmailService struct {
	sent    []*domain.AssignmentEmailData
	failFor map[string]error
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{failFor: map[string]error{}}
}

func (f *fakeEmailService) SendAssignment(ctx context.Context, data *domain.AssignmentEmailData) error {
	if err, ok := f.failFor[data.GiverEmail]; ok {
		return err
	}
	f.sent = append(f.sent, data)
	return nil
}
