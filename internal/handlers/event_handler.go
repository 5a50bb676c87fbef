package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventiapi/eventiapi/internal/helpers"
	"github.com/eventiapi/eventiapi/internal/models"
)

type EventRequest struct {
	ID       uuid.UUID `json:"eventoId"`
	Title    string    `json:"titolo" binding:"required"`
	Date     time.Time `json:"data" binding:"required"`
	Location string    `json:"luogo" binding:"required"`
	ArtistID uuid.UUID `json:"artistaId" binding:"required"`
	Revision int       `json:"revision"`
}

func ListEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	// Preload tolerates a deleted artist: the field just stays null.
	var events []models.Event
	if err := gormDB.Preload("Artist").Find(&events).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, events)
}

func GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Preload("Artist").Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

func CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	if !artistExists(gormDB, req.ArtistID) {
		helpers.RespondWithFieldErrors(c, map[string][]string{
			"artistaId": {"references a missing artist"},
		})
		return
	}

	event := models.Event{
		ID:       req.ID,
		Title:    req.Title,
		Date:     req.Date,
		Location: req.Location,
		ArtistID: req.ArtistID,
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.Header("Location", fmt.Sprintf("/api/eventi/%s", event.ID))
	c.JSON(http.StatusCreated, event)
}

func UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event id.")
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.ID != eventID {
		helpers.RespondWithError(c, http.StatusBadRequest, "Path and body identifiers do not match.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	if !artistExists(gormDB, req.ArtistID) {
		helpers.RespondWithFieldErrors(c, map[string][]string{
			"artistaId": {"references a missing artist"},
		})
		return
	}

	result := gormDB.Model(&models.Event{}).
		Where("id = ? AND revision = ?", eventID, req.Revision).
		Updates(map[string]interface{}{
			"title":      req.Title,
			"date":       req.Date,
			"location":   req.Location,
			"artist_id":  req.ArtistID,
			"revision":   req.Revision + 1,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := gormDB.Model(&models.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error verifying event.")
			return
		}
		if count == 0 {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Concurrent update conflict.")
		return
	}

	c.Status(http.StatusNoContent)
}

func DeleteEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	if err := gormDB.Delete(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	c.Status(http.StatusNoContent)
}

func artistExists(db *gorm.DB, artistID uuid.UUID) bool {
	var count int64
	if err := db.Model(&models.Artist{}).Where("id = ?", artistID).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
