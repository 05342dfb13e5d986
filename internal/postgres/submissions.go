package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"hackhub-api/internal/hub"
	"hackhub-api/internal/models"
)

// Submissions is the postgres-backed hub.SubmissionRepo.
type Submissions struct {
	db *pgxpool.Pool
}

func NewSubmissions(db *pgxpool.Pool) *Submissions {
	return &Submissions{db: db}
}

func (r *Submissions) Create(ctx context.Context, s *models.Submission) error {
	q := builder.Insert("submissions").
		Columns("file", "url", "user_id", "hackathon_id").
		Values(s.File, s.URL, s.UserID, s.HackathonID).
		Suffix("RETURNING id, created_at")

	if err := qRow(ctx, r.db, q).Scan(&s.ID, &s.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %d already submitted to hackathon %d", hub.ErrConflict, s.UserID, s.HackathonID)
		}
		return fmt.Errorf("inserting submission: %w", err)
	}
	return nil
}

func (r *Submissions) ExistsFor(ctx context.Context, userID, hackathonID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM submissions WHERE user_id=$1 AND hackathon_id=$2)",
		userID, hackathonID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking submission: %w", err)
	}
	return exists, nil
}

func (r *Submissions) ByHackathon(ctx context.Context, hackathonID int) ([]models.Submission, error) {
	q := builder.Select("id", "file", "url", "user_id", "hackathon_id", "created_at").
		From("submissions").
		Where(sq.Eq{"hackathon_id": hackathonID}).
		OrderBy("id ASC")

	rows, err := qQuery(ctx, r.db, q)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	var out []models.Submission
	for rows.Next() {
		var s models.Submission
		if err := rows.Scan(&s.ID, &s.File, &s.URL, &s.UserID, &s.HackathonID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
