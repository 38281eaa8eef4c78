package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCourseInput struct {
	CourseCode   string  `json:"course_code" binding:"required"`
	CourseName   string  `json:"course_name" binding:"required"`
	Description  string  `json:"description"`
	Credits      int     `json:"credits" binding:"required,min=1,max=6"`
	Department   string  `json:"department" binding:"required"`
	Semester     string  `json:"semester" binding:"required,oneof=Fall Spring Summer"`
	Year         int     `json:"year" binding:"required"`
	ScheduleDay  *string `json:"schedule_day" binding:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	ScheduleTime *string `json:"schedule_time"`
	ScheduleRoom *string `json:"schedule_room"`
}

type TeacherInfo struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department *string   `json:"department,omitempty"`
}

type CourseResponse struct {
	ID           uuid.UUID    `json:"id"`
	CourseCode   string       `json:"course_code"`
	CourseName   string       `json:"course_name"`
	Description  string       `json:"description"`
	Credits      int          `json:"credits"`
	Department   string       `json:"department"`
	Teacher      TeacherInfo  `json:"teacher"`
	Semester     string       `json:"semester"`
	Year         int          `json:"year"`
	ScheduleDay  *string      `json:"schedule_day,omitempty"`
	ScheduleTime *string      `json:"schedule_time,omitempty"`
	ScheduleRoom *string      `json:"schedule_room,omitempty"`
	Students     []MemberInfo `json:"students"`
	CreatedAt    time.Time    `json:"created_at"`
}
