package models

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubmissionType selects which file categories a hackathon accepts.
type SubmissionType string

const (
	SubmissionFile  SubmissionType = "file"
	SubmissionImage SubmissionType = "image"
)

// ParseSubmissionType normalizes a raw submission type value.
// The empty string falls back to the "file" default; matching is
// case-insensitive ("File", "IMAGE" and so on are accepted).
func ParseSubmissionType(raw string) (SubmissionType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return SubmissionFile, nil
	case "file":
		return SubmissionFile, nil
	case "image":
		return SubmissionImage, nil
	}
	return "", fmt.Errorf("unknown submission type %q", raw)
}

type Hackathon struct {
	ID             int            `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	BGImage        string         `json:"bg_image"`
	BannerImage    string         `json:"banner_image"`
	SubmissionType SubmissionType `json:"submission_type"`
	Rewards        int            `json:"rewards"`
	StartAt        time.Time      `json:"start_datetime"`
	EndAt          time.Time      `json:"end_datetime"`
	CreatorID      int            `json:"creator_id"`
	CreatedAt      time.Time      `json:"created_at"`
}

type Submission struct {
	ID          int       `json:"id"`
	File        string    `json:"file,omitempty"`
	URL         string    `json:"url,omitempty"`
	UserID      int       `json:"user_id"`
	HackathonID int       `json:"hackathon_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Membership is one row of the user↔hackathon enrollment relation.
type Membership struct {
	UserID      int `json:"user_id"`
	HackathonID int `json:"hackathon_id"`
}
