package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hackhub-api/internal/config"
	"hackhub-api/internal/handlers"
	"hackhub-api/internal/hub"
	"hackhub-api/internal/logger"
	"hackhub-api/internal/postgres"
	"hackhub-api/internal/storage"
)

func main() {
	cfg := config.Load()

	logger.Setup(cfg.Env)
	slog.Info("starting hackhub api", "env", cfg.Env, "port", cfg.Port)

	db, err := postgres.Connect(cfg.DatabaseURL())
	if err != nil {
		slog.Error("database unavailable", "error", err)
		return
	}
	defer db.Close()

	if err := postgres.InitSchema(context.Background(), db); err != nil {
		slog.Error("schema init failed", "error", err)
		return
	}

	store := storage.New(cfg.UploadDir)
	engine := hub.New(
		postgres.NewUsers(db),
		postgres.NewHackathons(db),
		postgres.NewMemberships(db),
		postgres.NewSubmissions(db),
		store,
		slog.Default(),
	)
	h := handlers.New(engine)

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.AllowedOrigin}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	// Stored uploads are retrievable at /uploads/{category}/{filename}.
	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api")
	{
		api.GET("/getinfo", h.GetInfo)

		api.POST("/users", h.Register)
		api.GET("/users", h.Users)
		api.GET("/users/:id", h.UserByID)
		api.GET("/users/:id/hackathons", h.CreatedHackathons)
		api.GET("/users/:id/enrollments", h.EnrolledHackathons)

		api.POST("/hackathons", h.CreateHackathon)
		api.GET("/hackathons", h.Hackathons)
		api.GET("/hackathons/:id", h.HackathonByID)
		api.GET("/hackathons/:id/participants", h.Participants)
		api.POST("/hackathons/:id/participants", h.Participate)
		api.DELETE("/hackathons/:id/participants/:user_id", h.Unenroll)
		api.POST("/hackathons/:id/submissions", h.Submit)
		api.GET("/hackathons/:id/submissions", h.HackathonSubmissions)
	}

	addr := ":" + cfg.Port
	slog.Info("listening", "address", addr)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
	}
}
