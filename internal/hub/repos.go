package hub

import (
	"context"
	"io"

	"hackhub-api/internal/models"
)

// UserRepo persists user records. Lookups return (nil, nil) when no row
// matches; errors are reserved for infrastructure faults.
type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	ByID(ctx context.Context, id int) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	All(ctx context.Context) ([]models.User, error)
}

// HackathonRepo persists hackathon records.
type HackathonRepo interface {
	Create(ctx context.Context, h *models.Hackathon) error
	ByID(ctx context.Context, id int) (*models.Hackathon, error)
	ByCreator(ctx context.Context, userID int) ([]models.Hackathon, error)
	All(ctx context.Context) ([]models.Hackathon, error)
}

// MembershipRepo is the explicit association-table repository for the
// user↔hackathon enrollment relation.
type MembershipRepo interface {
	Add(ctx context.Context, userID, hackathonID int) error
	// Remove reports whether a pair was actually deleted.
	Remove(ctx context.Context, userID, hackathonID int) (bool, error)
	Exists(ctx context.Context, userID, hackathonID int) (bool, error)
	HackathonsByUser(ctx context.Context, userID int) ([]models.Hackathon, error)
	UsersByHackathon(ctx context.Context, hackathonID int) ([]models.User, error)
}

// SubmissionRepo persists submission records.
type SubmissionRepo interface {
	Create(ctx context.Context, s *models.Submission) error
	ExistsFor(ctx context.Context, userID, hackathonID int) (bool, error)
	ByHackathon(ctx context.Context, hackathonID int) ([]models.Submission, error)
}

// FileStore persists uploaded content under a logical category and
// returns the name it can be retrieved by.
type FileStore interface {
	Save(ctx context.Context, category, filename string, src io.Reader) (string, error)
}
