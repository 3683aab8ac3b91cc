package repository

import (
	"errors"

	"ulearner_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Enroll inserts the enrollment, treating a duplicate pair as success.
func (r *EnrollmentRepository) Enroll(userID, courseID uint) error {
	err := r.DB.Create(&model.Enrollment{UserID: userID, CourseID: courseID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *EnrollmentRepository) IsEnrolled(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) FindCoursesByUserID(userID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Instructor").
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ? AND enrollments.deleted_at IS NULL", userID).
		Find(&courses).Error
	return courses, err
}

func (r *EnrollmentRepository) CountByCourseID(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
