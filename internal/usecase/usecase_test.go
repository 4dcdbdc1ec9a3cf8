package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/avdeev/module-certification/internal/audit"
	"github.com/avdeev/module-certification/internal/core/domain"
	"github.com/avdeev/module-certification/internal/core/port"
	"github.com/avdeev/module-certification/internal/guard"
	"github.com/avdeev/module-certification/internal/repository"
	"github.com/avdeev/module-certification/internal/repository/memory"
)

type fakeUsers struct {
	profiles map[string]domain.UserProfile
	updated  []domain.UserProfile
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &profile, nil
}

func (f *fakeUsers) Update(_ context.Context, profile domain.UserProfile) error {
	if _, ok := f.profiles[profile.ID]; !ok {
		return repository.ErrNotFound
	}
	f.profiles[profile.ID] = profile
	f.updated = append(f.updated, profile)
	return nil
}

type fakeRounds struct {
	active  *domain.CertificationRound
	created []domain.CertificationRound
}

func (f *fakeRounds) Active(context.Context) (*domain.CertificationRound, error) {
	if f.active == nil {
		return nil, repository.ErrNotFound
	}
	round := *f.active
	return &round, nil
}

func (f *fakeRounds) Create(_ context.Context, round domain.CertificationRound) error {
	f.created = append(f.created, round)
	return nil
}

type fakeNotes struct {
	notes []domain.Note
}

func (f *fakeNotes) List(context.Context) ([]domain.Note, error) {
	out := make([]domain.Note, len(f.notes))
	copy(out, f.notes)
	return out, nil
}

func (f *fakeNotes) Create(_ context.Context, note domain.Note) error {
	f.notes = append(f.notes, note)
	return nil
}

type fakeDocuments struct {
	data     map[string]map[string]map[string]any
	getCalls int
	nextID   int
}

func newFakeDocuments() *fakeDocuments {
	return &fakeDocuments{data: make(map[string]map[string]map[string]any)}
}

func (f *fakeDocuments) Get(_ context.Context, collection, id string) (*port.Document, error) {
	f.getCalls++
	doc, ok := f.data[collection][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := make(map[string]any, len(doc))
	for k, v := range doc {
		copied[k] = v
	}
	return &port.Document{ID: id, Data: copied}, nil
}

func (f *fakeDocuments) Add(_ context.Context, collection string, data map[string]any) (string, error) {
	f.nextID++
	id := fmt.Sprintf("doc-%d", f.nextID)
	if f.data[collection] == nil {
		f.data[collection] = make(map[string]map[string]any)
	}
	f.data[collection][id] = data
	return id, nil
}

func (f *fakeDocuments) Set(_ context.Context, collection, id string, data map[string]any) error {
	if f.data[collection] == nil {
		f.data[collection] = make(map[string]map[string]any)
	}
	f.data[collection][id] = data
	return nil
}

type capturingPublisher struct {
	entries []domain.AuditEntry
}

func (p *capturingPublisher) PublishAuditLogged(_ context.Context, entry domain.AuditEntry) error {
	p.entries = append(p.entries, entry)
	return nil
}

type testEnv struct {
	users     *fakeUsers
	rounds    *fakeRounds
	notes     *fakeNotes
	documents *fakeDocuments
	published *capturingPublisher
	clock     *fakeClock

	auth      *AuthService
	authz     *AuthzService
	noteSvc   *NoteService
	resources *ResourceService
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	logger := zaptest.NewLogger(t)

	users := &fakeUsers{profiles: map[string]domain.UserProfile{
		"u-admin": {ID: "u-admin", Email: "admin@example.com", DisplayName: "Admin", Role: domain.RoleSysadmin, Active: true},
		"u-owner": {ID: "u-owner", Email: "owner@example.com", DisplayName: "Owner", Role: domain.RoleProgramOwner, Active: true},
		"u-ops":   {ID: "u-ops", Email: "ops@example.com", DisplayName: "Ops", Role: domain.RoleOperations, Active: true},
		"u-gone":  {ID: "u-gone", Email: "gone@example.com", DisplayName: "Gone", Role: domain.RoleOperations, Active: false},
	}}
	rounds := &fakeRounds{}
	notes := &fakeNotes{}
	documents := newFakeDocuments()
	published := &capturingPublisher{}

	auth := NewAuthService(users)
	authz := NewAuthzService(auth, rounds, documents)
	g := guard.New(memory.NewRateLimitStore(), memory.NewDuplicateStore(), logger).WithClock(clock.Now)
	recorder := audit.NewRecorder(published, logger).WithClock(clock.Now)
	limits := GuardLimits{MaxRequests: 10, Window: time.Minute, DuplicateWindow: 30 * time.Second}

	return &testEnv{
		users:     users,
		rounds:    rounds,
		notes:     notes,
		documents: documents,
		published: published,
		clock:     clock,
		auth:      auth,
		authz:     authz,
		noteSvc:   NewNoteService(authz, g, notes, recorder, limits).WithClock(clock.Now),
		resources: NewResourceService(authz, g, documents, rounds, users, recorder, limits, []string{"example.com"}).WithClock(clock.Now),
	}
}

func (e *testEnv) openRound() {
	e.rounds.active = &domain.CertificationRound{
		ID:        "round-1",
		Name:      "Spring 2026",
		Status:    domain.RoundStatusActive,
		StartDate: e.clock.now.Add(-24 * time.Hour),
		DueDate:   e.clock.now.Add(30 * 24 * time.Hour),
		CreatedBy: "u-admin",
	}
}

func ident(uid string) *domain.Identity {
	return &domain.Identity{UID: uid}
}
