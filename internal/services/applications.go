package services

import (
	"bytes"
	"context"
	"html/template"
	"strings"
	"time"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	"github.com/novaxiii/agency-backend/internal/logger"
	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/repository"
)

const applicationSubject = "New Agent Application Received"

var summaryTemplate = template.Must(template.New("application").Parse(`<h2>New Agent Application</h2>
<p><strong>Name:</strong> {{.FirstName}} {{.LastName}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Location:</strong> {{.Location}}</p>
<p><strong>Experience:</strong> {{.Experience}}</p>
<p><strong>Licenses:</strong> {{.Licenses}}</p>
<p><strong>Message:</strong> {{.Message}}</p>
<p><strong>Resume:</strong> {{.Resume}}</p>
<p>Log in to the admin portal to review this application.</p>
`))

type summaryView struct {
	FirstName, LastName, Email, Phone, Location, Experience string
	Licenses, Message, Resume                               string
}

// RenderSummary builds the HTML notification body for an application.
func RenderSummary(app model.Application) (string, error) {
	view := summaryView{
		FirstName:  app.FirstName,
		LastName:   app.LastName,
		Email:      app.Email,
		Phone:      app.Phone,
		Location:   app.Location,
		Experience: app.Experience,
		Licenses:   orNone(strings.Join(app.Licenses, ", ")),
		Message:    orNone(app.Message),
		Resume:     "Not provided",
	}
	if app.ResumeURL != "" {
		view.Resume = "Attached"
	}

	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

// ApplicationService persists job applications and notifies the admin.
type ApplicationService struct {
	store      repository.ApplicationStore
	mailer     Mailer
	adminEmail string
	timeout    time.Duration

	// dispatch runs the notification; tests replace it to run synchronously.
	dispatch func(func())
}

func NewApplicationService(store repository.ApplicationStore, mailer Mailer, adminEmail string, timeout time.Duration) *ApplicationService {
	return &ApplicationService{
		store:      store,
		mailer:     mailer,
		adminEmail: adminEmail,
		timeout:    timeout,
		dispatch:   func(f func()) { go f() },
	}
}

// Submit saves the application then sends the notification in the
// background. A notification failure is logged and never returned.
func (s *ApplicationService) Submit(ctx context.Context, app model.Application) (*model.Application, error) {
	if app.Licenses == nil {
		app.Licenses = []string{}
	}
	app.Status = model.StatusPending

	saved, err := s.store.Create(ctx, &app)
	if err != nil {
		return nil, err
	}

	notifyCtx := context.WithoutCancel(ctx)
	s.dispatch(func() { s.notify(notifyCtx, *saved) })
	return saved, nil
}

func (s *ApplicationService) notify(ctx context.Context, app model.Application) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := RenderSummary(app)
	if err != nil {
		logger.Error("Render application summary %s: %v", app.ID, err)
		return
	}
	err = s.mailer.Send(ctx, Email{To: s.adminEmail, Subject: applicationSubject, HTML: body})
	if err != nil {
		logger.Error("Email sending error for application %s: %v", app.ID, err)
		return
	}
	logger.Success("Notification sent for application %s", app.ID)
}

func (s *ApplicationService) List(ctx context.Context) ([]model.Application, error) {
	return s.store.ListAll(ctx)
}

// UpdateStatus rejects statuses outside the known set before touching the store.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("Invalid status: " + string(status))
	}
	return s.store.UpdateStatus(ctx, id, status)
}
