// Package handlers maps HTTP requests onto engine calls and domain
// errors onto status codes. No business rule lives here.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hackhub-api/internal/hub"
)

type Handler struct {
	Engine *hub.Engine
}

func New(engine *hub.Engine) *Handler {
	return &Handler{Engine: engine}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, hub.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, hub.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, hub.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, hub.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, hub.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	default:
		// ErrState and infrastructure faults are server-side problems.
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// intParam parses a path parameter that must be integral.
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return v, true
}

// ------------------- Users -------------------

// POST /api/users
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Name     string          `json:"name"`
		Email    string          `json:"email"`
		Password string          `json:"password"`
		IsAdmin  json.RawMessage `json:"is_admin"`
	}
	if err := c.BindJSON(&req); err != nil {
		return // BindJSON already wrote a 400
	}

	user, err := h.Engine.Register(c.Request.Context(), hub.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  rawFlag(req.IsAdmin),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "name": user.Name})
}

// rawFlag turns an is_admin value into its textual form, accepting both
// a JSON boolean and the historic string encoding ("True"/"False").
func rawFlag(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if s, err := strconv.Unquote(string(raw)); err == nil {
		return s
	}
	return string(raw)
}

// GET /api/users
func (h *Handler) Users(c *gin.Context) {
	users, err := h.Engine.Users(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func (h *Handler) UserByID(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	user, err := h.Engine.UserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /api/users/:id/hackathons
func (h *Handler) CreatedHackathons(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	list, err := h.Engine.CreatedHackathons(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/users/:id/enrollments
func (h *Handler) EnrolledHackathons(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	list, err := h.Engine.EnrolledHackathons(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ------------------- Info -------------------

// GET /api/getinfo describes the payloads clients must send.
func (h *Handler) GetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, []gin.H{
		{"user": gin.H{
			"name":     "required",
			"email":    "required",
			"password": "required",
		}},
		{"submission": gin.H{
			"file":         "default",
			"url":          "if required",
			"user_id":      "required",
			"hackathon_id": "required",
		}},
	})
}
