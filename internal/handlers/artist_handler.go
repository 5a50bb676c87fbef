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

type ArtistRequest struct {
	ID        uuid.UUID `json:"artistaId"`
	Name      string    `json:"nome" binding:"required"`
	Genre     string    `json:"genere"`
	Biography string    `json:"biografia"`
	Revision  int       `json:"revision"`
}

func ListArtists(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var artists []models.Artist
	if err := gormDB.Find(&artists).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving artists.")
		return
	}

	c.JSON(http.StatusOK, artists)
}

func GetArtist(c *gin.Context) {
	artistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Artist not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var artist models.Artist
	if err := gormDB.Where("id = ?", artistID).First(&artist).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Artist not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving artist.")
		return
	}

	c.JSON(http.StatusOK, artist)
}

func CreateArtist(c *gin.Context) {
	var req ArtistRequest
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

	artist := models.Artist{
		ID:        req.ID,
		Name:      req.Name,
		Genre:     req.Genre,
		Biography: req.Biography,
	}

	if err := gormDB.Create(&artist).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create artist.")
		return
	}

	c.Header("Location", fmt.Sprintf("/api/artisti/%s", artist.ID))
	c.JSON(http.StatusCreated, artist)
}

func UpdateArtist(c *gin.Context) {
	artistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid artist id.")
		return
	}

	var req ArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.ID != artistID {
		helpers.RespondWithError(c, http.StatusBadRequest, "Path and body identifiers do not match.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	// The update only lands if nobody else bumped the revision since this
	// writer last read the record.
	result := gormDB.Model(&models.Artist{}).
		Where("id = ? AND revision = ?", artistID, req.Revision).
		Updates(map[string]interface{}{
			"name":       req.Name,
			"genre":      req.Genre,
			"biography":  req.Biography,
			"revision":   req.Revision + 1,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update artist.")
		return
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := gormDB.Model(&models.Artist{}).Where("id = ?", artistID).Count(&count).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error verifying artist.")
			return
		}
		if count == 0 {
			helpers.RespondWithError(c, http.StatusNotFound, "Artist not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Concurrent update conflict.")
		return
	}

	c.Status(http.StatusNoContent)
}

func DeleteArtist(c *gin.Context) {
	artistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Artist not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var artist models.Artist
	if err := gormDB.Where("id = ?", artistID).First(&artist).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Artist not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving artist.")
		return
	}

	// Physical delete. Events referencing this artist are left in place.
	if err := gormDB.Delete(&artist).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete artist.")
		return
	}

	c.Status(http.StatusNoContent)
}
