// Package postgres implements the repository contracts on a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/repository"
	"github.com/novaxiii/agency-backend/internal/scanner"
	"github.com/novaxiii/agency-backend/internal/utils"
)

const uniqueViolation = "23505"

// New wraps an open pool. Close shuts the pool down.
func New(pool *pgxpool.Pool) repository.Store {
	return repository.Store{
		Accounts:     &AccountStore{db: pool},
		Performance:  &PerformanceStore{db: pool},
		Applications: &ApplicationStore{db: pool},
		Ping:         pool.Ping,
		Close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}
}

type AccountStore struct {
	db *pgxpool.Pool
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanner.ScanUser(s.db.QueryRow(ctx,
		`SELECT `+scanner.UserColumns+` FROM users WHERE email=$1`, email))
	return u, notFound(err, "User not found")
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, err := scanner.ScanUser(s.db.QueryRow(ctx,
		`SELECT `+scanner.UserColumns+` FROM users WHERE id=$1`, id))
	return u, notFound(err, "User not found")
}

func (s *AccountStore) Create(ctx context.Context, user *model.User) (*model.User, error) {
	id := user.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	u, err := scanner.ScanUser(s.db.QueryRow(ctx,
		`INSERT INTO users(id, first_name, last_name, email, password_hash, role, agency_name,
			agent_type, phone, profile_image, active, created_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		 RETURNING `+scanner.UserColumns,
		id, user.FirstName, user.LastName, user.Email, user.PasswordHash, string(user.Role), user.AgencyName,
		string(user.AgentType), utils.StringToNullString(user.Phone), utils.StringToNullString(user.ProfileImage),
		user.Active, createdAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *AccountStore) UpdateProfile(ctx context.Context, id string, fields model.ProfileUpdate) (*model.User, error) {
	var agentType *string
	if fields.AgentType != nil {
		v := string(*fields.AgentType)
		agentType = &v
	}

	// NULL garde la valeur existante ; une image vide est ignorée.
	u, err := scanner.ScanUser(s.db.QueryRow(ctx,
		`UPDATE users SET
			first_name    = COALESCE($2::text, first_name),
			last_name     = COALESCE($3::text, last_name),
			phone         = COALESCE($4::text, phone),
			agency_name   = COALESCE($5::text, agency_name),
			agent_type    = COALESCE($6::text, agent_type),
			profile_image = COALESCE(NULLIF($7::text, ''), profile_image)
		 WHERE id=$1
		 RETURNING `+scanner.UserColumns,
		id, fields.FirstName, fields.LastName, fields.Phone, fields.AgencyName, agentType, fields.ProfileImage,
	))
	return u, notFound(err, "User not found")
}

func (s *AccountStore) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+scanner.UserColumns+` FROM users ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanner.ScanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

type PerformanceStore struct {
	db *pgxpool.Pool
}

func (s *PerformanceStore) Insert(ctx context.Context, r *model.PerformanceRecord) (*model.PerformanceRecord, error) {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	rec, err := scanner.ScanPerformance(s.db.QueryRow(ctx,
		`INSERT INTO performances(id, user_id, date, calls, appointments, sits, sales, alp,
			refs, ref_appointments, ref_sales, ref_alp, notes, created_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		 RETURNING `+scanner.PerformanceColumns,
		id, r.UserID, r.Date, r.Calls, r.Appointments, r.Sits, r.Sales, r.ALP,
		r.Refs, r.RefAppointments, r.RefSales, r.RefALP, utils.StringToNullString(r.Notes), createdAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert performance: %w", err)
	}
	return rec, nil
}

func (s *PerformanceStore) QueryByUser(ctx context.Context, userID string, window *model.Window) ([]model.PerformanceRecord, error) {
	query := `SELECT ` + scanner.PerformanceColumns + ` FROM performances WHERE user_id=$1`
	args := []interface{}{userID}
	if window != nil {
		query += ` AND date >= $2 AND date <= $3`
		args = append(args, window.Start, window.End)
	}
	query += ` ORDER BY date DESC, id`
	return s.query(ctx, query, args...)
}

func (s *PerformanceStore) QueryAll(ctx context.Context, window model.Window) ([]model.PerformanceRecord, error) {
	return s.query(ctx,
		`SELECT `+scanner.PerformanceColumns+` FROM performances
		 WHERE date >= $1 AND date <= $2
		 ORDER BY date, id`,
		window.Start, window.End,
	)
}

func (s *PerformanceStore) query(ctx context.Context, sql string, args ...interface{}) ([]model.PerformanceRecord, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query performances: %w", err)
	}
	defer rows.Close()

	records := []model.PerformanceRecord{}
	for rows.Next() {
		r, err := scanner.ScanPerformance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan performance: %w", err)
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

type ApplicationStore struct {
	db *pgxpool.Pool
}

func (s *ApplicationStore) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	id := app.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := app.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	status := app.Status
	if status == "" {
		status = model.StatusPending
	}
	a, err := scanner.ScanApplication(s.db.QueryRow(ctx,
		`INSERT INTO applications(id, first_name, last_name, email, phone, location, experience,
			licenses, message, resume_url, status, created_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		 RETURNING `+scanner.ApplicationColumns,
		id, app.FirstName, app.LastName, app.Email, app.Phone, app.Location, app.Experience,
		scanner.LicensesParam(app.Licenses), utils.StringToNullString(app.Message), utils.StringToNullString(app.ResumeURL),
		string(status), createdAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	return a, nil
}

func (s *ApplicationStore) ListAll(ctx context.Context) ([]model.Application, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+scanner.ApplicationColumns+` FROM applications ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	apps := []model.Application{}
	for rows.Next() {
		a, err := scanner.ScanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

func (s *ApplicationStore) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	a, err := scanner.ScanApplication(s.db.QueryRow(ctx,
		`UPDATE applications SET status=$2 WHERE id=$1 RETURNING `+scanner.ApplicationColumns,
		id, string(status),
	))
	return a, notFound(err, "Application not found")
}

// notFound traduit pgx.ErrNoRows en erreur 404.
func notFound(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.NotFound(message)
	default:
		return err
	}
}
