package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitSchema creates the tables on startup. The UNIQUE constraints on
// users.email, memberships(user_id, hackathon_id) and
// submissions(user_id, hackathon_id) back the engine's duplicate checks.
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS hackathons (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT 'OK',
		bg_image TEXT NOT NULL,
		banner_image TEXT NOT NULL,
		submission_type TEXT NOT NULL DEFAULT 'file',
		rewards INT NOT NULL DEFAULT 500,
		start_datetime TIMESTAMPTZ NOT NULL,
		end_datetime TIMESTAMPTZ NOT NULL,
		creator_id INT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS memberships (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		hackathon_id INT NOT NULL REFERENCES hackathons(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE(user_id, hackathon_id)
	);

	CREATE TABLE IF NOT EXISTS submissions (
		id SERIAL PRIMARY KEY,
		file TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		hackathon_id INT NOT NULL REFERENCES hackathons(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE(user_id, hackathon_id)
	);

	CREATE INDEX IF NOT EXISTS idx_hackathons_creator ON hackathons(creator_id);
	CREATE INDEX IF NOT EXISTS idx_memberships_hackathon ON memberships(hackathon_id);
	CREATE INDEX IF NOT EXISTS idx_submissions_hackathon ON submissions(hackathon_id);
	`

	_, err := db.Exec(ctx, schema)
	return err
}
