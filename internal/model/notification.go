package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationNewClub  = "new_club"
	NotificationNewEvent = "new_event"
)

type Notification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type       string     `gorm:"size:50;not null" json:"type"`
	Title      string     `gorm:"size:200;not null" json:"title"`
	Message    string     `gorm:"type:text" json:"message"`
	Read       bool       `gorm:"default:false" json:"read"`
	ClubID     *uuid.UUID `gorm:"type:uuid" json:"club_id,omitempty"`
	EventTitle *string    `gorm:"size:200" json:"event_title,omitempty"`
	EventDate  *time.Time `json:"event_date,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
