package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is created only by the purchase workflow and never updated or
// deleted afterwards.
type Ticket struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"bigliettoId"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;index" json:"eventoId"`
	Event       *Event    `gorm:"foreignKey:EventID" json:"evento,omitempty"`
	PurchasedAt time.Time `gorm:"not null" json:"dataAcquisto"`
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
