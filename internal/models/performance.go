package model

import "time"

// Metrics regroupe les neuf compteurs d'une journée : production directe puis parrainages.
type Metrics struct {
	Calls           int     `json:"calls"`
	Appointments    int     `json:"appointments"`
	Sits            int     `json:"sits"`
	Sales           int     `json:"sales"`
	ALP             float64 `json:"alp"`
	Refs            int     `json:"refs"`
	RefAppointments int     `json:"refAppointments"`
	RefSales        int     `json:"refSales"`
	RefALP          float64 `json:"refAlp"`
}

// Add accumulates o into m.
func (m *Metrics) Add(o Metrics) {
	m.Calls += o.Calls
	m.Appointments += o.Appointments
	m.Sits += o.Sits
	m.Sales += o.Sales
	m.ALP += o.ALP
	m.Refs += o.Refs
	m.RefAppointments += o.RefAppointments
	m.RefSales += o.RefSales
	m.RefALP += o.RefALP
}

// Negative reports the first counter below zero, or "" when all are valid.
func (m Metrics) Negative() string {
	switch {
	case m.Calls < 0:
		return "calls"
	case m.Appointments < 0:
		return "appointments"
	case m.Sits < 0:
		return "sits"
	case m.Sales < 0:
		return "sales"
	case m.ALP < 0:
		return "alp"
	case m.Refs < 0:
		return "refs"
	case m.RefAppointments < 0:
		return "refAppointments"
	case m.RefSales < 0:
		return "refSales"
	case m.RefALP < 0:
		return "refAlp"
	}
	return ""
}

// PerformanceRecord is one agent's metrics for one calendar day.
type PerformanceRecord struct {
	ID     string    `json:"_id"`
	UserID string    `json:"userId"`
	Date   time.Time `json:"date"`
	Metrics
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Window is an inclusive time range [Start, End].
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
