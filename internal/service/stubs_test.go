package service

import (
	"context"
	"sync"
	"time"

	"solar_dashboard/internal/models"
	"solar_dashboard/internal/repository"
	"solar_dashboard/internal/telemetry"
)

// stubUsers is an in-memory repository.Users.
type stubUsers struct {
	mu      sync.Mutex
	byID    map[int]models.User
	nextID  int
	err     error
	updates []models.User
}

func newStubUsers(users ...models.User) *stubUsers {
	s := &stubUsers{byID: map[int]models.User{}, nextID: 1}
	for _, u := range users {
		s.byID[u.ID] = u
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	return s
}

func (s *stubUsers) Create(name, email, hash string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	id := s.nextID
	s.nextID++
	s.byID[id] = models.User{ID: id, Name: name, Email: email, PasswordHash: hash, Photo: models.DefaultPhoto}
	return id, nil
}

func (s *stubUsers) GetByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) GetByID(_ context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *stubUsers) Update(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.updates = append(s.updates, u)
	s.byID[u.ID] = u
	return nil
}

// stubOverrides is an in-memory repository.OverrideRepo.
type stubOverrides struct {
	mu      sync.Mutex
	data    map[string]models.DeveloperOverride
	getErr  error
	saveErr error
	deleted []string
}

func newStubOverrides() *stubOverrides {
	return &stubOverrides{data: map[string]models.DeveloperOverride{}}
}

func (s *stubOverrides) Get(_ context.Context, sessionID string) (models.DeveloperOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return models.DeveloperOverride{}, s.getErr
	}
	o, ok := s.data[sessionID]
	if !ok {
		return models.DeveloperOverride{SessionID: sessionID}, nil
	}
	return o, nil
}

func (s *stubOverrides) Save(_ context.Context, o models.DeveloperOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data[o.SessionID] = o
	return nil
}

func (s *stubOverrides) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, sessionID)
	delete(s.data, sessionID)
	return nil
}

// stubEvents records appended events and answers List from a fixed slice.
type stubEvents struct {
	mu        sync.Mutex
	appends   []models.ActivityEvent
	appendErr error

	got     repository.EventQuery
	list    []models.ActivityEvent
	listErr error
	calls   int
}

func (s *stubEvents) Append(_ context.Context, e models.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appends = append(s.appends, e)
	return s.appendErr
}

func (s *stubEvents) List(_ context.Context, q repository.EventQuery) ([]models.ActivityEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.got = q
	return s.list, s.listErr
}

func (s *stubEvents) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.appends))
	for _, e := range s.appends {
		out = append(out, e.Type)
	}
	return out
}

// fixedSource always returns the same observation.
type fixedSource struct{ obs telemetry.Observation }

func (f fixedSource) Latest() telemetry.Observation { return f.obs }

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func atHour(h int) time.Time      { return time.Date(2025, 9, 28, h, 0, 0, 0, time.UTC) }

func clearNoon() telemetry.Observation {
	return telemetry.Observation{Temperature: floatPtr(21.5), WeatherCode: intPtr(0), ObservedAt: atHour(12)}
}
