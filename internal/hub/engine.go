// Package hub holds the enrollment and submission rules of the platform:
// who may register, who may enroll where, and what a participant may
// submit. Handlers stay thin; every invariant lives here.
package hub

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"hackhub-api/internal/auth"
	"hackhub-api/internal/models"
)

// Upload is a pending file upload: the client-supplied name plus content.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Receipt confirms a membership or submission mutation.
type Receipt struct {
	UserName       string `json:"user_name"`
	HackathonTitle string `json:"hackathon_title"`
}

// Background/banner images for a hackathon page.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Per-submission-type whitelists, keyed by the parent hackathon's
// configured type at the time of submission.
var submissionExts = map[models.SubmissionType]map[string]bool{
	models.SubmissionFile:  {".pdf": true, ".txt": true},
	models.SubmissionImage: {".jpg": true, ".jpeg": true, ".png": true},
}

type Engine struct {
	users       UserRepo
	hackathons  HackathonRepo
	memberships MembershipRepo
	submissions SubmissionRepo
	files       FileStore
	log         *slog.Logger
}

func New(users UserRepo, hackathons HackathonRepo, memberships MembershipRepo, submissions SubmissionRepo, files FileStore, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		users:       users,
		hackathons:  hackathons,
		memberships: memberships,
		submissions: submissions,
		files:       files,
		log:         log,
	}
}

// ------------------- Registration -------------------

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	// IsAdmin is a textual boolean ("True", "false", "1", ...) kept for
	// clients that still send the flag as a string. Empty means false.
	IsAdmin string
}

// Register creates a user with a bcrypt-hashed password. The email is
// the uniqueness key: the lookup here is the friendly fast path, the
// UNIQUE constraint at the storage layer is the authoritative guard.
func (e *Engine) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	isAdmin := false
	if raw := strings.TrimSpace(in.IsAdmin); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: is_admin must be a boolean, got %q", ErrValidation, in.IsAdmin)
		}
		isAdmin = b
	}

	existing, err := e.users.ByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %q is already registered", ErrConflict, email)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	if err := e.users.Create(ctx, u); err != nil {
		return nil, err
	}

	e.log.Info("user registered", "id", u.ID, "email", u.Email, "is_admin", u.IsAdmin)
	return u, nil
}

// ------------------- Hackathon creation -------------------

type HackathonInput struct {
	Title          string
	Description    string
	SubmissionType string
	Rewards        *int
	StartAt        string
	EndAt          string
	CreatorID      int
	Background     *Upload
	Banner         *Upload
}

// CreateHackathon validates inputs, stores both page images and inserts
// the record. The two file writes are not rolled back if the insert
// fails; orphaned uploads are left for an out-of-band cleanup job.
func (e *Engine) CreateHackathon(ctx context.Context, in HackathonInput) (*models.Hackathon, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	startAt, err := parseTimestamp(in.StartAt)
	if err != nil {
		return nil, fmt.Errorf("%w: start_datetime: %v", ErrValidation, err)
	}
	endAt, err := parseTimestamp(in.EndAt)
	if err != nil {
		return nil, fmt.Errorf("%w: end_datetime: %v", ErrValidation, err)
	}
	if in.CreatorID == 0 {
		return nil, fmt.Errorf("%w: creator_id is required", ErrValidation)
	}
	if err := checkImage(in.Background, "bg_image"); err != nil {
		return nil, err
	}
	if err := checkImage(in.Banner, "hackathon_image"); err != nil {
		return nil, err
	}

	subType, err := models.ParseSubmissionType(in.SubmissionType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	creator, err := e.users.ByID(ctx, in.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("looking up creator: %w", err)
	}
	if creator == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, in.CreatorID)
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = "OK"
	}
	rewards := 500
	if in.Rewards != nil {
		rewards = *in.Rewards
	}

	bgName, err := e.files.Save(ctx, "background", in.Background.Filename, in.Background.Content)
	if err != nil {
		return nil, fmt.Errorf("storing background image: %w", err)
	}
	bannerName, err := e.files.Save(ctx, "banner", in.Banner.Filename, in.Banner.Content)
	if err != nil {
		return nil, fmt.Errorf("storing banner image: %w", err)
	}

	h := &models.Hackathon{
		Title:          title,
		Description:    description,
		BGImage:        bgName,
		BannerImage:    bannerName,
		SubmissionType: subType,
		Rewards:        rewards,
		StartAt:        startAt,
		EndAt:          endAt,
		CreatorID:      creator.ID,
	}
	if err := e.hackathons.Create(ctx, h); err != nil {
		return nil, err
	}

	e.log.Info("hackathon created", "id", h.ID, "title", h.Title, "creator_id", h.CreatorID)
	return h, nil
}

func checkImage(u *Upload, field string) error {
	if u == nil || strings.TrimSpace(u.Filename) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	if !imageExts[extensionOf(u.Filename)] {
		return fmt.Errorf("%w: %s %q must be one of jpg, jpeg, png", ErrUnsupportedMedia, field, u.Filename)
	}
	return nil
}

// ------------------- Enrollment -------------------

// Participate enrolls a user into a hackathon. Admins are organizers,
// never participants. The existence check is the fast path; the unique
// pair constraint below the repo catches the race.
func (e *Engine) Participate(ctx context.Context, userID, hackathonID int) (*Receipt, error) {
	user, hack, err := e.resolvePair(ctx, userID, hackathonID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, fmt.Errorf("%w: admins cannot participate in hackathons", ErrForbidden)
	}

	enrolled, err := e.memberships.Exists(ctx, userID, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("checking membership: %w", err)
	}
	if enrolled {
		return nil, fmt.Errorf("%w: %s is already enrolled in %q", ErrConflict, user.Name, hack.Title)
	}

	if err := e.memberships.Add(ctx, userID, hackathonID); err != nil {
		return nil, err
	}

	e.log.Info("user enrolled", "user_id", userID, "hackathon_id", hackathonID)
	return &Receipt{UserName: user.Name, HackathonTitle: hack.Title}, nil
}

// Unenroll removes a membership pair. Removing a pair that does not
// exist is a not-found error, not a silent success.
func (e *Engine) Unenroll(ctx context.Context, userID, hackathonID int) (*Receipt, error) {
	user, hack, err := e.resolvePair(ctx, userID, hackathonID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, fmt.Errorf("%w: admins cannot unenroll from hackathons", ErrForbidden)
	}

	removed, err := e.memberships.Remove(ctx, userID, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("removing membership: %w", err)
	}
	if !removed {
		return nil, fmt.Errorf("%w: %s is not enrolled in %q", ErrNotFound, user.Name, hack.Title)
	}

	e.log.Info("user unenrolled", "user_id", userID, "hackathon_id", hackathonID)
	return &Receipt{UserName: user.Name, HackathonTitle: hack.Title}, nil
}

// ------------------- Submission -------------------

type SubmitInput struct {
	UserID      int
	HackathonID int
	File        *Upload
	URL         string
}

// Submit records a participant's artifact: a file, a url, or both.
// At most one submission per (user, hackathon) pair.
func (e *Engine) Submit(ctx context.Context, in SubmitInput) (*Receipt, error) {
	user, hack, err := e.resolvePair(ctx, in.UserID, in.HackathonID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, fmt.Errorf("%w: admins cannot submit to hackathons", ErrForbidden)
	}

	url := strings.TrimSpace(in.URL)
	if in.File == nil && url == "" {
		return nil, fmt.Errorf("%w: either a file or a url is required", ErrValidation)
	}

	exists, err := e.submissions.ExistsFor(ctx, in.UserID, in.HackathonID)
	if err != nil {
		return nil, fmt.Errorf("checking submissions: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s already submitted to %q", ErrConflict, user.Name, hack.Title)
	}

	var storedName string
	if in.File != nil {
		allowed, ok := submissionExts[hack.SubmissionType]
		if !ok {
			return nil, fmt.Errorf("%w: hackathon %d is configured with type %q", ErrState, hack.ID, hack.SubmissionType)
		}
		if strings.TrimSpace(in.File.Filename) == "" {
			return nil, fmt.Errorf("%w: file is missing a filename", ErrValidation)
		}
		if !allowed[extensionOf(in.File.Filename)] {
			return nil, fmt.Errorf("%w: %q is not accepted for %q submissions", ErrUnsupportedMedia, in.File.Filename, hack.SubmissionType)
		}
		storedName, err = e.files.Save(ctx, string(hack.SubmissionType), in.File.Filename, in.File.Content)
		if err != nil {
			return nil, fmt.Errorf("storing submission file: %w", err)
		}
	}

	s := &models.Submission{
		File:        storedName,
		URL:         url,
		UserID:      in.UserID,
		HackathonID: in.HackathonID,
	}
	if err := e.submissions.Create(ctx, s); err != nil {
		return nil, err
	}

	e.log.Info("submission received", "id", s.ID, "user_id", s.UserID, "hackathon_id", s.HackathonID)
	return &Receipt{UserName: user.Name, HackathonTitle: hack.Title}, nil
}

// ------------------- Reads -------------------

func (e *Engine) Users(ctx context.Context) ([]models.User, error) {
	users, err := e.users.All(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (e *Engine) UserByID(ctx context.Context, id int) (*models.User, error) {
	u, err := e.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return u, nil
}

// CreatedHackathons lists hackathons the user created. An unknown user
// simply has created nothing.
func (e *Engine) CreatedHackathons(ctx context.Context, userID int) ([]models.Hackathon, error) {
	hs, err := e.hackathons.ByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	if hs == nil {
		hs = []models.Hackathon{}
	}
	return hs, nil
}

// EnrolledHackathons lists hackathons the user is enrolled in. The user
// must resolve; an empty enrollment list is not an error.
func (e *Engine) EnrolledHackathons(ctx context.Context, userID int) ([]models.Hackathon, error) {
	if _, err := e.UserByID(ctx, userID); err != nil {
		return nil, err
	}
	hs, err := e.memberships.HackathonsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if hs == nil {
		hs = []models.Hackathon{}
	}
	return hs, nil
}

func (e *Engine) Hackathons(ctx context.Context) ([]models.Hackathon, error) {
	hs, err := e.hackathons.All(ctx)
	if err != nil {
		return nil, err
	}
	if hs == nil {
		hs = []models.Hackathon{}
	}
	return hs, nil
}

func (e *Engine) HackathonByID(ctx context.Context, id int) (*models.Hackathon, error) {
	h, err := e.hackathons.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("%w: hackathon %d", ErrNotFound, id)
	}
	return h, nil
}

// Participants lists users enrolled in a hackathon.
func (e *Engine) Participants(ctx context.Context, hackathonID int) ([]models.User, error) {
	if _, err := e.HackathonByID(ctx, hackathonID); err != nil {
		return nil, err
	}
	users, err := e.memberships.UsersByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// HackathonSubmissions lists submissions made to a hackathon.
func (e *Engine) HackathonSubmissions(ctx context.Context, hackathonID int) ([]models.Submission, error) {
	if _, err := e.HackathonByID(ctx, hackathonID); err != nil {
		return nil, err
	}
	subs, err := e.submissions.ByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	return subs, nil
}

// ------------------- Helpers -------------------

func (e *Engine) resolvePair(ctx context.Context, userID, hackathonID int) (*models.User, *models.Hackathon, error) {
	user, err := e.users.ByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	hack, err := e.hackathons.ByID(ctx, hackathonID)
	if err != nil {
		return nil, nil, fmt.Errorf("looking up hackathon: %w", err)
	}
	if hack == nil {
		return nil, nil, fmt.Errorf("%w: hackathon %d", ErrNotFound, hackathonID)
	}
	return user, hack, nil
}

func extensionOf(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func parseTimestamp(raw string) (t time.Time, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return t, fmt.Errorf("value is required")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err = time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return t, fmt.Errorf("unrecognized timestamp %q", raw)
}
