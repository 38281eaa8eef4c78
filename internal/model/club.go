package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Club struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	CoordinatorID uuid.UUID `gorm:"type:uuid;not null" json:"coordinator_id"`
	Coordinator   User      `gorm:"foreignKey:CoordinatorID" json:"coordinator"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	Events        []Event   `gorm:"constraint:OnDelete:CASCADE" json:"events"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Club) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ClubMember is an explicit membership row. Add/remove member is a
// single-row insert/delete, so concurrent membership edits never rewrite
// the whole club. Insertion order is the created_at order.
type ClubMember struct {
	ClubID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"club_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}

// Event rows carry a stable identifier. The index-based delete endpoint
// resolves a position over the creation-ordered list to an ID before
// deleting, so the row targeted is unambiguous.
type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClubID      uuid.UUID `gorm:"type:uuid;not null;index" json:"club_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
	Location    string    `gorm:"size:200" json:"location"`
	Attendees   []User    `gorm:"many2many:event_attendees" json:"attendees"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
