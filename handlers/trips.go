package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripplanner/database"
	"tripplanner/middleware"
	"tripplanner/services"
)

type CreateTripRequest struct {
	Destination string `json:"destination" binding:"required"`
	Days        int    `json:"days" binding:"required,min=1"`
	Companions  string `json:"companions" binding:"required,oneof=Solo Family Friends"`
	// Pointer so an explicit zero budget binds as present while an absent
	// field still fails required validation.
	Budget *float64 `json:"budget" binding:"required,min=0"`
}

// CreateTrip generates an itinerary and persists it, strictly in that order:
// a generation failure stores nothing.
func (h *Handler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	userID := middleware.UserID(c)
	budget := *req.Budget

	itinerary, err := h.generator.GenerateItinerary(c.Request.Context(),
		req.Destination, req.Days, req.Companions, budget)
	if err != nil {
		log.Printf("❌ Itinerary generation failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate itinerary"})
		return
	}

	trip := &database.Trip{
		ID:          uuid.New().String(),
		UserID:      userID,
		Destination: req.Destination,
		Days:        req.Days,
		Companions:  req.Companions,
		Budget:      budget,
		Itinerary:   itinerary,
	}

	if err := h.store.CreateTrip(c.Request.Context(), trip); err != nil {
		log.Printf("❌ Failed to save trip: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save trip"})
		return
	}

	log.Printf("✅ Trip %s created for user %s (%s, %d days)", trip.ID, userID, trip.Destination, trip.Days)
	c.JSON(http.StatusCreated, trip)
}

func (h *Handler) ListTrips(c *gin.Context) {
	trips, err := h.store.ListTripsByOwner(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		log.Printf("❌ Failed to list trips: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trips"})
		return
	}

	c.JSON(http.StatusOK, trips)
}

func (h *Handler) GetTrip(c *gin.Context) {
	trip, err := h.store.GetTripOwned(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		log.Printf("❌ Failed to fetch trip: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trip"})
		return
	}

	c.JSON(http.StatusOK, trip)
}

func (h *Handler) DeleteTrip(c *gin.Context) {
	err := h.store.DeleteTripOwned(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		log.Printf("❌ Failed to delete trip: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}

func (h *Handler) DownloadTripPDF(c *gin.Context) {
	trip, err := h.store.GetTripOwned(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		log.Printf("❌ Failed to fetch trip for PDF: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trip"})
		return
	}

	pdfBytes, err := services.GenerateTripPDF(services.TripPDFData{
		Destination: trip.Destination,
		Days:        trip.Days,
		Companions:  trip.Companions,
		Budget:      trip.Budget,
		Itinerary:   trip.Itinerary,
		CreatedAt:   trip.CreatedAt,
	})
	if err != nil {
		log.Printf("❌ PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=trip-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
