package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hackhub-api/internal/hub"
)

// POST /api/hackathons (multipart form)
func (h *Handler) CreateHackathon(c *gin.Context) {
	creatorID, err := strconv.Atoi(c.PostForm("creator_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "creator_id must be an integer"})
		return
	}

	var rewards *int
	if raw := c.PostForm("rewards"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rewards must be an integer"})
			return
		}
		rewards = &v
	}

	bg, closeBG, err := formUpload(c, "bg_image")
	if err != nil {
		fail(c, err)
		return
	}
	if closeBG != nil {
		defer closeBG()
	}
	banner, closeBanner, err := formUpload(c, "hackathon_image")
	if err != nil {
		fail(c, err)
		return
	}
	if closeBanner != nil {
		defer closeBanner()
	}

	hack, err := h.Engine.CreateHackathon(c.Request.Context(), hub.HackathonInput{
		Title:          c.PostForm("title"),
		Description:    c.PostForm("description"),
		SubmissionType: c.PostForm("submission_type"),
		Rewards:        rewards,
		StartAt:        c.PostForm("start_datetime"),
		EndAt:          c.PostForm("end_datetime"),
		CreatorID:      creatorID,
		Background:     bg,
		Banner:         banner,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": hack.ID, "title": hack.Title})
}

// GET /api/hackathons
func (h *Handler) Hackathons(c *gin.Context) {
	list, err := h.Engine.Hackathons(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/hackathons/:id
func (h *Handler) HackathonByID(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	hack, err := h.Engine.HackathonByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, hack)
}

// GET /api/hackathons/:id/participants
func (h *Handler) Participants(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	users, err := h.Engine.Participants(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// POST /api/hackathons/:id/participants
func (h *Handler) Participate(c *gin.Context) {
	hackathonID, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		UserID int `json:"user_id"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}

	receipt, err := h.Engine.Participate(c.Request.Context(), req.UserID, hackathonID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": receipt.UserName + " is enrolled in " + receipt.HackathonTitle,
	})
}

// DELETE /api/hackathons/:id/participants/:user_id
func (h *Handler) Unenroll(c *gin.Context) {
	hackathonID, ok := intParam(c, "id")
	if !ok {
		return
	}
	userID, ok := intParam(c, "user_id")
	if !ok {
		return
	}

	receipt, err := h.Engine.Unenroll(c.Request.Context(), userID, hackathonID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": receipt.UserName + " is no longer enrolled in " + receipt.HackathonTitle,
	})
}

// POST /api/hackathons/:id/submissions (multipart form)
func (h *Handler) Submit(c *gin.Context) {
	hackathonID, ok := intParam(c, "id")
	if !ok {
		return
	}
	userID, err := strconv.Atoi(c.PostForm("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}

	file, closeFile, err := formUpload(c, "file")
	if err != nil {
		fail(c, err)
		return
	}
	if closeFile != nil {
		defer closeFile()
	}

	receipt, err := h.Engine.Submit(c.Request.Context(), hub.SubmitInput{
		UserID:      userID,
		HackathonID: hackathonID,
		File:        file,
		URL:         c.PostForm("url"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "submission by " + receipt.UserName + " recorded for " + receipt.HackathonTitle,
	})
}

// GET /api/hackathons/:id/submissions
func (h *Handler) HackathonSubmissions(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	subs, err := h.Engine.HackathonSubmissions(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// formUpload opens an optional multipart file field. A missing field is
// not an error here; the engine decides whether it was required.
func formUpload(c *gin.Context, field string) (*hub.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading %s: %v", hub.ErrValidation, field, err)
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*hub.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &hub.Upload{Filename: fh.Filename, Content: f}, func() { f.Close() }, nil
}
