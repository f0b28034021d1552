package model

import "time"

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewed    ApplicationStatus = "reviewed"
	StatusContacted   ApplicationStatus = "contacted"
	StatusInterviewed ApplicationStatus = "interviewed"
	StatusHired       ApplicationStatus = "hired"
	StatusRejected    ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusContacted, StatusInterviewed, StatusHired, StatusRejected:
		return true
	}
	return false
}

// Application est une candidature reçue via le formulaire public.
type Application struct {
	ID         string            `json:"_id"`
	FirstName  string            `json:"firstName"`
	LastName   string            `json:"lastName"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Location   string            `json:"location"`
	Experience string            `json:"experience"`
	Licenses   []string          `json:"licenses"`
	Message    string            `json:"message,omitempty"`
	ResumeURL  string            `json:"resumeUrl,omitempty"`
	Status     ApplicationStatus `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
}
