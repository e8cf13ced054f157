package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/database"
	"tripplanner/middleware"
)

// Store is the persistence surface the handlers depend on. Trip reads and
// deletes always carry the owner id; cross-owner access is unrepresentable.
type Store interface {
	CreateUser(ctx context.Context, u *database.User) error
	GetUserByEmail(ctx context.Context, email string) (*database.User, error)
	CreateTrip(ctx context.Context, t *database.Trip) error
	ListTripsByOwner(ctx context.Context, ownerID string) ([]database.Trip, error)
	GetTripOwned(ctx context.Context, ownerID, tripID string) (*database.Trip, error)
	DeleteTripOwned(ctx context.Context, ownerID, tripID string) error
	Ping(ctx context.Context) error
}

// Generator produces a plain-text itinerary from trip parameters.
type Generator interface {
	GenerateItinerary(ctx context.Context, destination string, days int, companions string, budget float64) (string, error)
}

type Handler struct {
	store     Store
	generator Generator
	jwtSecret []byte
}

func New(store Store, generator Generator, jwtSecret []byte) *Handler {
	return &Handler{
		store:     store,
		generator: generator,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes mounts all API endpoints on r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/health", h.Health)

	auth := api.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	trips := api.Group("/trips")
	trips.Use(middleware.AuthRequired(h.jwtSecret))
	trips.POST("", h.CreateTrip)
	trips.GET("", h.ListTrips)
	trips.GET("/:id", h.GetTrip)
	trips.DELETE("/:id", h.DeleteTrip)
	trips.GET("/:id/pdf", h.DownloadTripPDF)
}

func (h *Handler) Health(c *gin.Context) {
	dbStatus := "ok"
	if err := h.store.Ping(c.Request.Context()); err != nil {
		dbStatus = "error: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "Trip Planner API",
		"database": dbStatus,
	})
}
