package memory

import (
	"context"
	"testing"
	"time"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	model "github.com/novaxiii/agency-backend/internal/models"
)

func TestAccountStoreRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := NewAccountStore()

	if _, err := s.Create(ctx, &model.User{Email: "john@novaxiii.com"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := s.Create(ctx, &model.User{Email: "john@novaxiii.com"})
	if !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAccountStoreUpdateProfileIsPartial(t *testing.T) {
	ctx := context.Background()
	s := NewAccountStore()
	u, _ := s.Create(ctx, &model.User{
		Email: "maria@novaxiii.com", FirstName: "Maria", LastName: "Rodriguez",
		AgencyName: "PINNACLE", AgentType: model.AgentTypeGA, ProfileImage: "old.jpg",
	})

	first := "Mary"
	empty := ""
	updated, err := s.UpdateProfile(ctx, u.ID, model.ProfileUpdate{FirstName: &first, ProfileImage: &empty})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FirstName != "Mary" || updated.LastName != "Rodriguez" {
		t.Fatalf("unexpected names %q %q", updated.FirstName, updated.LastName)
	}
	if updated.ProfileImage != "old.jpg" {
		t.Fatalf("empty image should not overwrite, got %q", updated.ProfileImage)
	}

	if _, err := s.UpdateProfile(ctx, "missing", model.ProfileUpdate{}); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPerformanceStoreQueries(t *testing.T) {
	ctx := context.Background()
	s := NewPerformanceStore()
	day := func(d int) time.Time { return time.Date(2025, time.March, d, 0, 0, 0, 0, time.Local) }

	for _, r := range []model.PerformanceRecord{
		{UserID: "a", Date: day(17)},
		{UserID: "a", Date: day(19)},
		{UserID: "b", Date: day(18)},
		{UserID: "a", Date: day(25)},
	} {
		r := r
		if _, err := s.Insert(ctx, &r); err != nil {
			t.Fatal(err)
		}
	}

	own, _ := s.QueryByUser(ctx, "a", nil)
	if len(own) != 3 || !own[0].Date.Equal(day(25)) {
		t.Fatalf("QueryByUser without window: %+v", own)
	}

	window := model.Window{Start: day(16), End: day(22).Add(-time.Millisecond)}
	windowed, _ := s.QueryByUser(ctx, "a", &window)
	if len(windowed) != 2 {
		t.Fatalf("QueryByUser with window returned %d records", len(windowed))
	}

	all, _ := s.QueryAll(ctx, window)
	if len(all) != 3 {
		t.Fatalf("QueryAll returned %d records", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Date.Before(all[i-1].Date) {
			t.Fatal("QueryAll must be ordered by date ascending")
		}
	}
}

func TestPerformanceStoreSameDayOrderedByID(t *testing.T) {
	ctx := context.Background()
	s := NewPerformanceStore()
	day := func(d int) time.Time { return time.Date(2025, time.March, d, 0, 0, 0, 0, time.Local) }

	for _, r := range []model.PerformanceRecord{
		{ID: "r3", UserID: "a", Date: day(17)},
		{ID: "r1", UserID: "a", Date: day(17)},
		{ID: "r4", UserID: "a", Date: day(18)},
		{ID: "r2", UserID: "a", Date: day(17)},
	} {
		r := r
		if _, err := s.Insert(ctx, &r); err != nil {
			t.Fatal(err)
		}
	}

	got, _ := s.QueryByUser(ctx, "a", nil)
	want := []string{"r4", "r1", "r2", "r3"}
	if len(got) != len(want) {
		t.Fatalf("QueryByUser returned %d records", len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("record %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestApplicationStoreDefaultsAndStatus(t *testing.T) {
	ctx := context.Background()
	s := NewApplicationStore()

	app, err := s.Create(ctx, &model.Application{FirstName: "David"})
	if err != nil {
		t.Fatal(err)
	}
	if app.Status != model.StatusPending {
		t.Errorf("status = %q", app.Status)
	}
	if app.Licenses == nil {
		t.Error("licenses should default to an empty list")
	}

	updated, err := s.UpdateStatus(ctx, app.ID, model.StatusHired)
	if err != nil || updated.Status != model.StatusHired {
		t.Fatalf("UpdateStatus = %+v, %v", updated, err)
	}
	if _, err := s.UpdateStatus(ctx, "nope", model.StatusHired); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
