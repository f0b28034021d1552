package scanner

import (
	"database/sql"

	"github.com/lib/pq"

	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/utils"
)

// Row is satisfied by pgx.Row and pgx.Rows.
type Row interface {
	Scan(dest ...interface{}) error
}

// UserColumns est l'ordre des colonnes attendu par ScanUser.
const UserColumns = `id, first_name, last_name, email, password_hash, role, agency_name,
	agent_type, phone, profile_image, active, created_at`

// ScanUser scanne une ligne SQL vers un User
func ScanUser(row Row) (*model.User, error) {
	var u model.User
	var role, agentType string
	var phone, profileImage sql.NullString

	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &role, &u.AgencyName,
		&agentType, &phone, &profileImage, &u.Active, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Role = model.Role(role)
	u.AgentType = model.AgentType(agentType)
	u.Phone = utils.NullStringToString(phone)
	u.ProfileImage = utils.NullStringToString(profileImage)
	return &u, nil
}

const PerformanceColumns = `id, user_id, date, calls, appointments, sits, sales, alp,
	refs, ref_appointments, ref_sales, ref_alp, notes, created_at`

// ScanPerformance scanne une ligne SQL vers un PerformanceRecord
func ScanPerformance(row Row) (*model.PerformanceRecord, error) {
	var p model.PerformanceRecord
	var notes sql.NullString

	err := row.Scan(
		&p.ID, &p.UserID, &p.Date, &p.Calls, &p.Appointments, &p.Sits, &p.Sales, &p.ALP,
		&p.Refs, &p.RefAppointments, &p.RefSales, &p.RefALP, &notes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Notes = utils.NullStringToString(notes)
	return &p, nil
}

const ApplicationColumns = `id, first_name, last_name, email, phone, location, experience,
	licenses, message, resume_url, status, created_at`

// LicensesParam encode les licences pour un paramètre TEXT[]. pgx envoie un
// driver.Valuer sous forme texte, que Postgres convertit vers la colonne.
func LicensesParam(licenses []string) interface{} {
	if licenses == nil {
		licenses = []string{}
	}
	return pq.Array(licenses)
}

// ScanApplication scanne une ligne SQL vers une Application. pgx décode le
// TEXT[] (format binaire) directement dans un []string.
func ScanApplication(row Row) (*model.Application, error) {
	var a model.Application
	var status string
	var message, resumeURL sql.NullString

	err := row.Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.Location, &a.Experience,
		&a.Licenses, &message, &resumeURL, &status, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if a.Licenses == nil {
		a.Licenses = []string{}
	}
	a.Message = utils.NullStringToString(message)
	a.ResumeURL = utils.NullStringToString(resumeURL)
	a.Status = model.ApplicationStatus(status)
	return &a, nil
}
