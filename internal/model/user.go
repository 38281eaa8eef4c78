package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names form a closed set; registration rejects anything else.
const (
	RoleStudent     = "Student"
	RoleTeacher     = "Teacher"
	RoleCoordinator = "Club Coordinator"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Permissions []string  `gorm:"serializer:json" json:"permissions"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	Email         string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"size:255;not null" json:"-"`
	RoleID        *uint      `json:"role_id"`
	Role          Role       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"role"`
	StudentID     *string    `gorm:"size:50;uniqueIndex" json:"student_id,omitempty"`
	CoordinatorID *string    `gorm:"size:50;uniqueIndex" json:"coordinator_id,omitempty"`
	Department    *string    `gorm:"size:100" json:"department,omitempty"`
	Year          *string    `gorm:"size:20" json:"year,omitempty"`
	AvatarURL     *string    `gorm:"type:text" json:"avatar_url,omitempty"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RoleName returns the resolved role name, or "" when the role association
// has not been loaded.
func (u *User) RoleName() string {
	return u.Role.Name
}
