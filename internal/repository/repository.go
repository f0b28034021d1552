// Package repository declares the persistence contracts shared by the
// postgres, mongo and memory backends.
package repository

import (
	"context"

	model "github.com/novaxiii/agency-backend/internal/models"
)

// AccountStore persists users. Create returns a conflict error when the email is taken.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, fields model.ProfileUpdate) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
}

// PerformanceStore persists daily performance records.
//
// QueryByUser returns newest first and ignores the window when it is nil.
// QueryAll returns records ordered by date then id so that aggregation over
// an unchanged set is deterministic.
type PerformanceStore interface {
	Insert(ctx context.Context, record *model.PerformanceRecord) (*model.PerformanceRecord, error)
	QueryByUser(ctx context.Context, userID string, window *model.Window) ([]model.PerformanceRecord, error)
	QueryAll(ctx context.Context, window model.Window) ([]model.PerformanceRecord, error)
}

type ApplicationStore interface {
	Create(ctx context.Context, app *model.Application) (*model.Application, error)
	ListAll(ctx context.Context) ([]model.Application, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error)
}

// Store bundles the three stores of one backend.
type Store struct {
	Accounts     AccountStore
	Performance  PerformanceStore
	Applications ApplicationStore

	// Ping checks the backend is reachable.
	Ping func(ctx context.Context) error
	// Close releases the backend's connections.
	Close func(ctx context.Context) error
}
