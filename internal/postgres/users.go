package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hackhub-api/internal/hub"
	"hackhub-api/internal/models"
)

var userColumns = []string{"id", "name", "email", "password_hash", "is_admin", "created_at"}

// Users is the postgres-backed hub.UserRepo.
type Users struct {
	db *pgxpool.Pool
}

func NewUsers(db *pgxpool.Pool) *Users {
	return &Users{db: db}
}

func (r *Users) Create(ctx context.Context, u *models.User) error {
	q := builder.Insert("users").
		Columns("name", "email", "password_hash", "is_admin").
		Values(u.Name, u.Email, u.PasswordHash, u.IsAdmin).
		Suffix("RETURNING id, created_at")

	if err := qRow(ctx, r.db, q).Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %q is already registered", hub.ErrConflict, u.Email)
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *Users) ByID(ctx context.Context, id int) (*models.User, error) {
	return r.one(ctx, sq.Eq{"id": id})
}

func (r *Users) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.one(ctx, sq.Eq{"email": email})
}

func (r *Users) All(ctx context.Context) ([]models.User, error) {
	q := builder.Select(userColumns...).From("users").OrderBy("id ASC")

	rows, err := qQuery(ctx, r.db, q)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *Users) one(ctx context.Context, where sq.Eq) (*models.User, error) {
	q := builder.Select(userColumns...).From("users").Where(where)

	var u models.User
	err := qRow(ctx, r.db, q).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading user: %w", err)
	}
	return &u, nil
}

func scanUsers(rows pgx.Rows) ([]models.User, error) {
	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
