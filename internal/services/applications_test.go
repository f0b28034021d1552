package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/repository/memory"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []Email
	err  error
	ctxs []context.Context
}

func (f *fakeMailer) Send(ctx context.Context, e Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, e)
	f.ctxs = append(f.ctxs, ctx)
	return f.err
}

func newSyncService(mailer Mailer) *ApplicationService {
	svc := NewApplicationService(memory.NewApplicationStore(), mailer, "admin@novaxiii.com", time.Second)
	svc.dispatch = func(f func()) { f() }
	return svc
}

func sample() model.Application {
	return model.Application{
		FirstName:  "Sarah",
		LastName:   "Williams",
		Email:      "sarah.williams@example.com",
		Phone:      "(555) 123-4567",
		Location:   "Dallas, TX",
		Experience: "1-3",
	}
}

func TestRenderSummaryEmptyLicenses(t *testing.T) {
	body, err := RenderSummary(sample())
	if err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	for _, want := range []string{
		"<strong>Licenses:</strong> None",
		"<strong>Message:</strong> None",
		"<strong>Resume:</strong> Not provided",
		"Sarah Williams",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("summary missing %q:\n%s", want, body)
		}
	}
}

func TestRenderSummaryFilled(t *testing.T) {
	app := sample()
	app.Licenses = []string{"life", "health"}
	app.Message = "Looking forward to <joining>"
	app.ResumeURL = "https://example.com/cv.pdf"

	body, err := RenderSummary(app)
	if err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	if !strings.Contains(body, "life, health") {
		t.Errorf("licenses not joined:\n%s", body)
	}
	if !strings.Contains(body, "Attached") {
		t.Errorf("resume not marked attached:\n%s", body)
	}
	if strings.Contains(body, "<joining>") {
		t.Errorf("message not escaped:\n%s", body)
	}
}

func TestSubmitNotifies(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newSyncService(mailer)

	ctx, cancel := context.WithCancel(context.Background())
	saved, err := svc.Submit(ctx, sample())
	cancel()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if saved.Status != model.StatusPending || saved.Licenses == nil {
		t.Errorf("saved = %+v", saved)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailer.sent))
	}
	e := mailer.sent[0]
	if e.To != "admin@novaxiii.com" || e.Subject != applicationSubject {
		t.Errorf("email = %+v", e)
	}
	if !strings.Contains(e.HTML, "None") {
		t.Errorf("empty licenses not rendered as None")
	}
}

func TestSubmitSurvivesMailFailure(t *testing.T) {
	svc := newSyncService(&fakeMailer{err: errors.New("smtp down")})

	saved, err := svc.Submit(context.Background(), sample())
	if err != nil {
		t.Fatalf("Submit returned mail error: %v", err)
	}
	list, _ := svc.List(context.Background())
	if len(list) != 1 || list[0].ID != saved.ID {
		t.Errorf("application not stored: %+v", list)
	}
}

func TestSubmitDetachesFromRequest(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewApplicationService(memory.NewApplicationStore(), mailer, "admin@novaxiii.com", time.Second)
	done := make(chan struct{})
	svc.dispatch = func(f func()) {
		go func() {
			f()
			close(done)
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := svc.Submit(ctx, sample()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	cancel()
	<-done

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.ctxs) != 1 {
		t.Fatalf("sent %d emails", len(mailer.ctxs))
	}
	if _, ok := mailer.ctxs[0].Deadline(); !ok {
		t.Error("notification context has no timeout")
	}
}

func TestUpdateStatus(t *testing.T) {
	svc := newSyncService(LogMailer{})
	ctx := context.Background()
	saved, err := svc.Submit(ctx, sample())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, saved.ID, model.StatusHired)
	if err != nil || updated.Status != model.StatusHired {
		t.Fatalf("UpdateStatus = %+v, %v", updated, err)
	}
	if _, err := svc.UpdateStatus(ctx, saved.ID, "promoted"); !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Errorf("invalid status err = %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "missing", model.StatusReviewed); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Errorf("unknown id err = %v", err)
	}
}
