// Command seed fills the configured store with sample agents, one week of
// performance and a few applications.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	"github.com/novaxiii/agency-backend/internal/auth"
	"github.com/novaxiii/agency-backend/internal/config"
	"github.com/novaxiii/agency-backend/internal/logger"
	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/repository"
	"github.com/novaxiii/agency-backend/internal/storage"
)

const samplePassword = "password123"

var sampleUsers = []model.User{
	{
		FirstName: "John", LastName: "Smith", Email: "john.smith@novaxiii.com",
		Role: model.RoleAgent, AgencyName: "METROPOLITAN", AgentType: model.AgentTypeSA,
		Phone: "555-123-4567", ProfileImage: "https://randomuser.me/api/portraits/men/1.jpg", Active: true,
	},
	{
		FirstName: "Maria", LastName: "Rodriguez", Email: "maria.rodriguez@novaxiii.com",
		Role: model.RoleAgent, AgencyName: "PINNACLE", AgentType: model.AgentTypeGA,
		Phone: "555-234-5678", ProfileImage: "https://randomuser.me/api/portraits/women/1.jpg", Active: true,
	},
	{
		FirstName: "Admin", LastName: "User", Email: "admin@novaxiii.com",
		Role: model.RoleAdmin, AgencyName: "NOVAXIII", AgentType: model.AgentTypeSA,
		Phone: "555-987-6543", Active: true,
	},
}

type sampleDay struct {
	email string
	date  string
	notes string
	model.Metrics
}

var sampleWeek = []sampleDay{
	{"john.smith@novaxiii.com", "2025-03-17", "Great day with high-value client",
		model.Metrics{Calls: 43, Appointments: 12, Sits: 8, Sales: 5, ALP: 8250.75, Refs: 15, RefAppointments: 6, RefSales: 3, RefALP: 4500.25}},
	{"john.smith@novaxiii.com", "2025-03-18", "Follow-up with existing clients",
		model.Metrics{Calls: 38, Appointments: 10, Sits: 7, Sales: 4, ALP: 7120.50, Refs: 12, RefAppointments: 5, RefSales: 2, RefALP: 3250.75}},
	{"john.smith@novaxiii.com", "2025-03-19", "Excellent day with new leads",
		model.Metrics{Calls: 45, Appointments: 15, Sits: 9, Sales: 6, ALP: 9800.25, Refs: 18, RefAppointments: 8, RefSales: 4, RefALP: 5400.50}},
	{"maria.rodriguez@novaxiii.com", "2025-03-17", "Exceeded daily goals",
		model.Metrics{Calls: 52, Appointments: 18, Sits: 12, Sales: 8, ALP: 12450.75, Refs: 22, RefAppointments: 10, RefSales: 5, RefALP: 7800.25}},
	{"maria.rodriguez@novaxiii.com", "2025-03-18", "Good conversion rate today",
		model.Metrics{Calls: 47, Appointments: 15, Sits: 10, Sales: 7, ALP: 10850.50, Refs: 18, RefAppointments: 8, RefSales: 4, RefALP: 6250.75}},
	{"maria.rodriguez@novaxiii.com", "2025-03-19", "Record day for appointments",
		model.Metrics{Calls: 55, Appointments: 20, Sits: 14, Sales: 9, ALP: 13420.25, Refs: 25, RefAppointments: 12, RefSales: 6, RefALP: 8350.50}},
}

var sampleApplications = []model.Application{
	{
		FirstName: "Michael", LastName: "Johnson", Email: "michael.johnson@example.com", Phone: "555-111-2222",
		Location: "Phoenix, AZ", Experience: "3-5", Licenses: []string{"life", "health"},
		Message: "I'm looking to join a progressive agency where I can leverage my existing client base and grow my business.",
		Status:  model.StatusPending, CreatedAt: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	},
	{
		FirstName: "Sarah", LastName: "Williams", Email: "sarah.williams@example.com", Phone: "555-333-4444",
		Location: "Dallas, TX", Experience: "1-3", Licenses: []string{"life"},
		Message: "I've been in sales for 2 years and ready to transition to insurance. I'm excited about the opportunity to join NOVAXIII.",
		Status:  model.StatusReviewed, CreatedAt: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
	},
	{
		FirstName: "David", LastName: "Chen", Email: "david.chen@example.com", Phone: "555-555-6666",
		Location: "San Francisco, CA", Experience: "5+", Licenses: []string{"life", "health", "property", "casualty"},
		Message: "Looking to bring my 8 years of insurance experience to a company with growth opportunities and strong support systems.",
		Status:  model.StatusContacted, CreatedAt: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer store.Close(ctx)

	if err := seed(ctx, store, auth.NewPasswords(cfg.BcryptCost)); err != nil {
		logger.Error("Seed failed: %v", err)
		os.Exit(1)
	}
	logger.Success("Seed complete")
}

// seed est idempotent pour les comptes : un email déjà pris est réutilisé.
func seed(ctx context.Context, store repository.Store, passwords auth.Passwords) error {
	hash, err := passwords.Hash(samplePassword)
	if err != nil {
		return err
	}

	ids := make(map[string]string, len(sampleUsers))
	for _, u := range sampleUsers {
		u.PasswordHash = hash
		created, err := store.Accounts.Create(ctx, &u)
		if apperrors.IsKind(err, apperrors.KindConflict) {
			logger.Warning("User %s already exists, skipping", u.Email)
			created, err = store.Accounts.FindByEmail(ctx, u.Email)
		}
		if err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
		ids[u.Email] = created.ID
	}
	logger.Info("%d users ready", len(ids))

	for _, d := range sampleWeek {
		date, err := time.ParseInLocation("2006-01-02", d.date, time.Local)
		if err != nil {
			return err
		}
		_, err = store.Performance.Insert(ctx, &model.PerformanceRecord{
			UserID:  ids[d.email],
			Date:    date,
			Metrics: d.Metrics,
			Notes:   d.notes,
		})
		if err != nil {
			return fmt.Errorf("performance %s %s: %w", d.email, d.date, err)
		}
	}
	logger.Info("%d performance records inserted", len(sampleWeek))

	for _, a := range sampleApplications {
		if _, err := store.Applications.Create(ctx, &a); err != nil {
			return fmt.Errorf("application %s: %w", a.Email, err)
		}
	}
	logger.Info("%d applications inserted", len(sampleApplications))
	return nil
}
