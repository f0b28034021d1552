package main

import (
	"context"
	"testing"

	"github.com/novaxiii/agency-backend/internal/auth"
	"github.com/novaxiii/agency-backend/internal/leaderboard"
	"github.com/novaxiii/agency-backend/internal/repository/memory"
)

func TestSeedTwice(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	passwords := auth.NewPasswords(4)

	if err := seed(ctx, store, passwords); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := seed(ctx, store, passwords); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	users, _ := store.Accounts.ListAll(ctx)
	if len(users) != len(sampleUsers) {
		t.Errorf("users = %d, want %d", len(users), len(sampleUsers))
	}

	svc := leaderboard.NewService(store.Performance, store.Accounts)
	entries, err := svc.Leaderboard(ctx, "2025-03-16", "2025-03-22")
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(entries) != 2 || entries[0].FirstName != "Maria" {
		t.Fatalf("entries = %+v, want Maria first", entries)
	}
	// deux passages, donc deux semaines identiques cumulées
	want := 2 * (12450.75 + 7800.25 + 10850.50 + 6250.75 + 13420.25 + 8350.50)
	if d := entries[0].TotalNetALP - want; d > 1e-6 || d < -1e-6 {
		t.Errorf("Maria net = %v, want %v", entries[0].TotalNetALP, want)
	}
}
