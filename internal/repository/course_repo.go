package repository

import (
	"context"

	"github.com/Khushi2755/academix/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindAll(ctx context.Context) ([]*model.Course, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	FindByCode(ctx context.Context, code string) (*model.Course, error)

	Students(ctx context.Context, courseID uuid.UUID) ([]model.CourseStudent, error)
	StudentsByCourseIDs(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID][]model.CourseStudent, error)
	IsEnrolled(ctx context.Context, courseID, userID uuid.UUID) (bool, error)
	AddStudent(ctx context.Context, courseID, userID uuid.UUID) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) FindAll(ctx context.Context) ([]*model.Course, error) {
	var courses []*model.Course
	if err := r.db.WithContext(ctx).
		Preload("Teacher").
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("id = ?", id).
		First(&course).Error; err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *courseRepository) FindByCode(ctx context.Context, code string) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).Where("course_code = ?", code).First(&course).Error; err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *courseRepository) Students(ctx context.Context, courseID uuid.UUID) ([]model.CourseStudent, error) {
	var students []model.CourseStudent
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *courseRepository) StudentsByCourseIDs(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID][]model.CourseStudent, error) {
	grouped := make(map[uuid.UUID][]model.CourseStudent, len(courseIDs))
	if len(courseIDs) == 0 {
		return grouped, nil
	}

	var students []model.CourseStudent
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("course_id IN ?", courseIDs).
		Order("created_at ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}

	for _, s := range students {
		grouped[s.CourseID] = append(grouped[s.CourseID], s)
	}

	return grouped, nil
}

func (r *courseRepository) IsEnrolled(ctx context.Context, courseID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.CourseStudent{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *courseRepository) AddStudent(ctx context.Context, courseID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&model.CourseStudent{CourseID: courseID, UserID: userID}).Error
}
