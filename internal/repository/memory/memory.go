// Package memory is an in-process store used for local development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/repository"
)

// New returns a Store whose three collections share nothing but the process.
func New() repository.Store {
	return repository.Store{
		Accounts:     NewAccountStore(),
		Performance:  NewPerformanceStore(),
		Applications: NewApplicationStore(),
		Ping:         func(context.Context) error { return nil },
		Close:        func(context.Context) error { return nil },
	}
}

type AccountStore struct {
	mu      sync.RWMutex
	users   map[string]model.User
	byEmail map[string]string
	now     func() time.Time
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		users:   make(map[string]model.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (s *AccountStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	u := s.users[id]
	return &u, nil
}

func (s *AccountStore) FindByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	return &u, nil
}

func (s *AccountStore) Create(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[user.Email]; taken {
		return nil, apperrors.Conflict("User already exists")
	}
	u := *user
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return &u, nil
}

func (s *AccountStore) UpdateProfile(_ context.Context, id string, fields model.ProfileUpdate) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	fields.Apply(&u)
	s.users[id] = u
	return &u, nil
}

func (s *AccountStore) ListAll(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

type PerformanceStore struct {
	mu      sync.RWMutex
	records []model.PerformanceRecord
	now     func() time.Time
}

func NewPerformanceStore() *PerformanceStore {
	return &PerformanceStore{now: time.Now}
}

func (s *PerformanceStore) Insert(_ context.Context, record *model.PerformanceRecord) (*model.PerformanceRecord, error) {
	r := *record
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()
	return &r, nil
}

func (s *PerformanceStore) QueryByUser(_ context.Context, userID string, window *model.Window) ([]model.PerformanceRecord, error) {
	s.mu.RLock()
	var out []model.PerformanceRecord
	for _, r := range s.records {
		if r.UserID != userID {
			continue
		}
		if window != nil && !window.Contains(r.Date) {
			continue
		}
		out = append(out, r)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *PerformanceStore) QueryAll(_ context.Context, window model.Window) ([]model.PerformanceRecord, error) {
	s.mu.RLock()
	var out []model.PerformanceRecord
	for _, r := range s.records {
		if window.Contains(r.Date) {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

type ApplicationStore struct {
	mu   sync.RWMutex
	apps map[string]model.Application
	now  func() time.Time
}

func NewApplicationStore() *ApplicationStore {
	return &ApplicationStore{
		apps: make(map[string]model.Application),
		now:  time.Now,
	}
}

func (s *ApplicationStore) Create(_ context.Context, app *model.Application) (*model.Application, error) {
	a := *app
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	if a.Status == "" {
		a.Status = model.StatusPending
	}
	if a.Licenses == nil {
		a.Licenses = []string{}
	}
	s.mu.Lock()
	s.apps[a.ID] = a
	s.mu.Unlock()
	return &a, nil
}

func (s *ApplicationStore) ListAll(_ context.Context) ([]model.Application, error) {
	s.mu.RLock()
	apps := make([]model.Application, 0, len(s.apps))
	for _, a := range s.apps {
		apps = append(apps, a)
	}
	s.mu.RUnlock()

	sort.Slice(apps, func(i, j int) bool {
		if apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].ID < apps[j].ID
		}
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}

func (s *ApplicationStore) UpdateStatus(_ context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, apperrors.NotFound("Application not found")
	}
	a.Status = status
	s.apps[id] = a
	return &a, nil
}
