package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novaxiii/agency-backend/internal/logger"
)

const connectTimeout = 5 * time.Second

// ConnectPostgres ouvre le pool et vérifie la connexion.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	logger.Success("Connected to PostgreSQL")
	return pool, nil
}

// schema mirrors the document collections: users, performances, applications.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'agent',
	agency_name   TEXT NOT NULL,
	agent_type    TEXT NOT NULL,
	phone         TEXT,
	profile_image TEXT,
	active        BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS users_role_idx ON users (role);
CREATE INDEX IF NOT EXISTS users_agency_name_idx ON users (agency_name);
CREATE INDEX IF NOT EXISTS users_created_at_idx ON users (created_at DESC);

CREATE TABLE IF NOT EXISTS performances (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	date             TIMESTAMPTZ NOT NULL,
	calls            INTEGER NOT NULL DEFAULT 0 CHECK (calls >= 0),
	appointments     INTEGER NOT NULL DEFAULT 0 CHECK (appointments >= 0),
	sits             INTEGER NOT NULL DEFAULT 0 CHECK (sits >= 0),
	sales            INTEGER NOT NULL DEFAULT 0 CHECK (sales >= 0),
	alp              DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (alp >= 0),
	refs             INTEGER NOT NULL DEFAULT 0 CHECK (refs >= 0),
	ref_appointments INTEGER NOT NULL DEFAULT 0 CHECK (ref_appointments >= 0),
	ref_sales        INTEGER NOT NULL DEFAULT 0 CHECK (ref_sales >= 0),
	ref_alp          DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (ref_alp >= 0),
	notes            TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS performances_user_id_idx ON performances (user_id);
CREATE INDEX IF NOT EXISTS performances_date_idx ON performances (date DESC);
CREATE INDEX IF NOT EXISTS performances_user_date_idx ON performances (user_id, date DESC);

CREATE TABLE IF NOT EXISTS applications (
	id          TEXT PRIMARY KEY,
	first_name  TEXT NOT NULL,
	last_name   TEXT NOT NULL,
	email       TEXT NOT NULL,
	phone       TEXT NOT NULL,
	location    TEXT NOT NULL,
	experience  TEXT NOT NULL,
	licenses    TEXT[] NOT NULL DEFAULT '{}',
	message     TEXT,
	resume_url  TEXT,
	status      TEXT NOT NULL DEFAULT 'pending',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS applications_email_idx ON applications (email);
CREATE INDEX IF NOT EXISTS applications_status_idx ON applications (status);
CREATE INDEX IF NOT EXISTS applications_created_at_idx ON applications (created_at DESC);
`

// EnsureSchema crée les tables et index manquants. Idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
