package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateClubInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateClubInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type AddMemberInput struct {
	StudentID string `json:"studentId" binding:"required"`
}

type AddEventInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Location    string `json:"location"`
}

// CoordinatorInfo and MemberInfo carry the identity projection the club
// endpoints expose: name, email and the role-specific id.
type CoordinatorInfo struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CoordinatorID *string   `json:"coordinator_id,omitempty"`
}

type MemberInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	StudentID *string   `json:"student_id,omitempty"`
}

type EventResponse struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Date        time.Time    `json:"date"`
	Location    string       `json:"location"`
	Attendees   []MemberInfo `json:"attendees"`
}

type ClubResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	IsActive    bool            `json:"is_active"`
	Coordinator CoordinatorInfo `json:"coordinator"`
	Members     []MemberInfo    `json:"members"`
	Events      []EventResponse `json:"events"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ClubDocument is the shape indexed into the search engine.
type ClubDocument struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Coordinator string `json:"coordinator"`
	CreatedAt   int64  `json:"created_at"`
}
