package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hackhub-api/internal/models"
)

var hackathonColumns = []string{
	"id", "title", "description", "bg_image", "banner_image",
	"submission_type", "rewards", "start_datetime", "end_datetime",
	"creator_id", "created_at",
}

// Hackathons is the postgres-backed hub.HackathonRepo.
type Hackathons struct {
	db *pgxpool.Pool
}

func NewHackathons(db *pgxpool.Pool) *Hackathons {
	return &Hackathons{db: db}
}

func (r *Hackathons) Create(ctx context.Context, h *models.Hackathon) error {
	q := builder.Insert("hackathons").
		Columns("title", "description", "bg_image", "banner_image",
			"submission_type", "rewards", "start_datetime", "end_datetime", "creator_id").
		Values(h.Title, h.Description, h.BGImage, h.BannerImage,
			string(h.SubmissionType), h.Rewards, h.StartAt, h.EndAt, h.CreatorID).
		Suffix("RETURNING id, created_at")

	if err := qRow(ctx, r.db, q).Scan(&h.ID, &h.CreatedAt); err != nil {
		return fmt.Errorf("inserting hackathon: %w", err)
	}
	return nil
}

func (r *Hackathons) ByID(ctx context.Context, id int) (*models.Hackathon, error) {
	q := builder.Select(hackathonColumns...).From("hackathons").Where(sq.Eq{"id": id})

	var h models.Hackathon
	err := qRow(ctx, r.db, q).Scan(
		&h.ID, &h.Title, &h.Description, &h.BGImage, &h.BannerImage,
		&h.SubmissionType, &h.Rewards, &h.StartAt, &h.EndAt,
		&h.CreatorID, &h.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading hackathon: %w", err)
	}
	return &h, nil
}

func (r *Hackathons) ByCreator(ctx context.Context, userID int) ([]models.Hackathon, error) {
	q := builder.Select(hackathonColumns...).From("hackathons").
		Where(sq.Eq{"creator_id": userID}).OrderBy("id DESC")
	return r.list(ctx, q)
}

func (r *Hackathons) All(ctx context.Context) ([]models.Hackathon, error) {
	q := builder.Select(hackathonColumns...).From("hackathons").OrderBy("id DESC")
	return r.list(ctx, q)
}

func (r *Hackathons) list(ctx context.Context, q sq.SelectBuilder) ([]models.Hackathon, error) {
	rows, err := qQuery(ctx, r.db, q)
	if err != nil {
		return nil, fmt.Errorf("listing hackathons: %w", err)
	}
	defer rows.Close()

	return scanHackathons(rows)
}

func scanHackathons(rows pgx.Rows) ([]models.Hackathon, error) {
	var out []models.Hackathon
	for rows.Next() {
		var h models.Hackathon
		if err := rows.Scan(
			&h.ID, &h.Title, &h.Description, &h.BGImage, &h.BannerImage,
			&h.SubmissionType, &h.Rewards, &h.StartAt, &h.EndAt,
			&h.CreatorID, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning hackathon: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
