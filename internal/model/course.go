package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseCode   string    `gorm:"size:20;uniqueIndex;not null" json:"course_code"`
	CourseName   string    `gorm:"size:200;not null" json:"course_name"`
	Description  string    `gorm:"type:text" json:"description"`
	Credits      int       `gorm:"not null" json:"credits"`
	Department   string    `gorm:"size:100;not null" json:"department"`
	TeacherID    uuid.UUID `gorm:"type:uuid;not null" json:"teacher_id"`
	Teacher      User      `gorm:"foreignKey:TeacherID" json:"teacher"`
	Semester     string    `gorm:"size:20;not null" json:"semester"`
	Year         int       `gorm:"not null" json:"year"`
	ScheduleDay  *string   `gorm:"size:20" json:"schedule_day,omitempty"`
	ScheduleTime *string   `gorm:"size:50" json:"schedule_time,omitempty"`
	ScheduleRoom *string   `gorm:"size:50" json:"schedule_room,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CourseStudent struct {
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"course_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}
