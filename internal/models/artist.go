package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Artist owns zero or more events. Deleting an artist does not touch its
// events; listings must tolerate the dangling reference that leaves behind.
type Artist struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"artistaId"`
	Name      string    `gorm:"not null" json:"nome"`
	Genre     string    `json:"genere"`
	Biography string    `json:"biografia"`
	Revision  int       `gorm:"not null;default:0" json:"revision"`
	Events    []Event   `gorm:"foreignKey:ArtistID" json:"eventi,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (artist *Artist) BeforeCreate(tx *gorm.DB) (err error) {
	if artist.ID == uuid.Nil {
		artist.ID = uuid.New()
	}
	return
}
