package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Khushi2755/academix/internal/dto"
	"github.com/Khushi2755/academix/internal/model"
	"github.com/Khushi2755/academix/internal/repository"
	"github.com/Khushi2755/academix/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseService interface {
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error)
	Create(ctx context.Context, actor *model.User, input dto.CreateCourseInput) (*dto.CourseResponse, error)
	Enroll(ctx context.Context, actor *model.User, courseID uuid.UUID) (*dto.CourseResponse, error)
}

type courseService struct {
	repo repository.CourseRepository
}

func NewCourseService(repo repository.CourseRepository) CourseService {
	return &courseService{repo: repo}
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]uuid.UUID, len(courses))
	for i, course := range courses {
		courseIDs[i] = course.ID
	}

	studentsByCourse, err := s.repo.StudentsByCourseIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, len(courses))
	for i, course := range courses {
		responses[i] = courseToResponse(course, studentsByCourse[course.ID])
	}

	return responses, nil
}

func (s *courseService) Get(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error) {
	return s.loadResponse(ctx, id)
}

func (s *courseService) Create(ctx context.Context, actor *model.User, input dto.CreateCourseInput) (*dto.CourseResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(input.CourseCode))

	if _, err := s.repo.FindByCode(ctx, code); err == nil {
		return nil, apperror.Conflict("Course with this code already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	course := &model.Course{
		CourseCode:   code,
		CourseName:   strings.TrimSpace(input.CourseName),
		Description:  strings.TrimSpace(input.Description),
		Credits:      input.Credits,
		Department:   strings.TrimSpace(input.Department),
		TeacherID:    actor.ID,
		Semester:     input.Semester,
		Year:         input.Year,
		ScheduleDay:  input.ScheduleDay,
		ScheduleTime: input.ScheduleTime,
		ScheduleRoom: input.ScheduleRoom,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}
	course.Teacher = *actor

	resp := courseToResponse(course, nil)
	return &resp, nil
}

func (s *courseService) Enroll(ctx context.Context, actor *model.User, courseID uuid.UUID) (*dto.CourseResponse, error) {
	if _, err := s.findCourse(ctx, courseID); err != nil {
		return nil, err
	}

	enrolled, err := s.repo.IsEnrolled(ctx, courseID, actor.ID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, apperror.Conflict("You are already enrolled in this course")
	}

	if err := s.repo.AddStudent(ctx, courseID, actor.ID); err != nil {
		return nil, err
	}

	return s.loadResponse(ctx, courseID)
}

func (s *courseService) findCourse(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Course not found")
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) loadResponse(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error) {
	course, err := s.findCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	students, err := s.repo.Students(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := courseToResponse(course, students)
	return &resp, nil
}

func courseToResponse(course *model.Course, students []model.CourseStudent) dto.CourseResponse {
	studentInfos := make([]dto.MemberInfo, len(students))
	for i, s := range students {
		studentInfos[i] = dto.MemberInfo{
			ID:        s.User.ID,
			Name:      s.User.Name,
			Email:     s.User.Email,
			StudentID: s.User.StudentID,
		}
	}

	return dto.CourseResponse{
		ID:          course.ID,
		CourseCode:  course.CourseCode,
		CourseName:  course.CourseName,
		Description: course.Description,
		Credits:     course.Credits,
		Department:  course.Department,
		Teacher: dto.TeacherInfo{
			ID:         course.Teacher.ID,
			Name:       course.Teacher.Name,
			Email:      course.Teacher.Email,
			Department: course.Teacher.Department,
		},
		Semester:     course.Semester,
		Year:         course.Year,
		ScheduleDay:  course.ScheduleDay,
		ScheduleTime: course.ScheduleTime,
		ScheduleRoom: course.ScheduleRoom,
		Students:     studentInfos,
		CreatedAt:    course.CreatedAt,
	}
}
