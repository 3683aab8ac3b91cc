package repository

import (
	"ulearner_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Save(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Preload("Course").First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) FindByCourseID(courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("course_id = ?", courseID).Order("order_index").Find(&lessons).Error
	return lessons, err
}

// Delete removes a lesson and cascades its progress records in one
// transaction. Progress rows are never deleted through any other path.
func (r *LessonRepository) Delete(lesson *model.Lesson) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&model.Progress{}).Error; err != nil {
			return err
		}
		return tx.Delete(lesson).Error
	})
}
