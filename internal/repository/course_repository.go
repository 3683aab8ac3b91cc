package repository

import (
	"ulearner_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindPublished() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Instructor").Where("published = ?", true).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByInstructorID(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Instructor").Where("instructor_id = ?", instructorID).Find(&courses).Error
	return courses, err
}

// SearchPublished does a keyword search over published course titles and
// descriptions.
func (r *CourseRepository) SearchPublished(keyword string) ([]model.Course, error) {
	var courses []model.Course
	pattern := "%" + keyword + "%"
	err := r.DB.Preload("Instructor").
		Where("published = ? AND (LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))",
			true, pattern, pattern).
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) CountLessons(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
