package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"hackhub-api/internal/hub"
	"hackhub-api/internal/models"
)

// Memberships is the postgres-backed hub.MembershipRepo: the explicit
// association-table repository for user↔hackathon enrollment.
type Memberships struct {
	db *pgxpool.Pool
}

func NewMemberships(db *pgxpool.Pool) *Memberships {
	return &Memberships{db: db}
}

func (r *Memberships) Add(ctx context.Context, userID, hackathonID int) error {
	q := builder.Insert("memberships").
		Columns("user_id", "hackathon_id").
		Values(userID, hackathonID)

	if _, err := qExec(ctx, r.db, q); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %d is already enrolled in hackathon %d", hub.ErrConflict, userID, hackathonID)
		}
		return fmt.Errorf("inserting membership: %w", err)
	}
	return nil
}

func (r *Memberships) Remove(ctx context.Context, userID, hackathonID int) (bool, error) {
	q := builder.Delete("memberships").
		Where(sq.Eq{"user_id": userID, "hackathon_id": hackathonID})

	tag, err := qExec(ctx, r.db, q)
	if err != nil {
		return false, fmt.Errorf("deleting membership: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Memberships) Exists(ctx context.Context, userID, hackathonID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM memberships WHERE user_id=$1 AND hackathon_id=$2)",
		userID, hackathonID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking membership: %w", err)
	}
	return exists, nil
}

func (r *Memberships) HackathonsByUser(ctx context.Context, userID int) ([]models.Hackathon, error) {
	q := builder.Select(prefixed("h", hackathonColumns)...).
		From("memberships m").
		Join("hackathons h ON h.id = m.hackathon_id").
		Where(sq.Eq{"m.user_id": userID}).
		OrderBy("h.id DESC")

	rows, err := qQuery(ctx, r.db, q)
	if err != nil {
		return nil, fmt.Errorf("listing enrolled hackathons: %w", err)
	}
	defer rows.Close()

	return scanHackathons(rows)
}

func (r *Memberships) UsersByHackathon(ctx context.Context, hackathonID int) ([]models.User, error) {
	q := builder.Select(prefixed("u", userColumns)...).
		From("memberships m").
		Join("users u ON u.id = m.user_id").
		Where(sq.Eq{"m.hackathon_id": hackathonID}).
		OrderBy("u.name ASC")

	rows, err := qQuery(ctx, r.db, q)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}
