package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"eventoId"`
	Title     string    `gorm:"not null" json:"titolo"`
	Date      time.Time `gorm:"not null" json:"data"`
	Location  string    `gorm:"not null" json:"luogo"`
	ArtistID  uuid.UUID `gorm:"type:uuid;not null;index" json:"artistaId"`
	Artist    *Artist   `gorm:"foreignKey:ArtistID" json:"artista,omitempty"`
	Revision  int       `gorm:"not null;default:0" json:"revision"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
