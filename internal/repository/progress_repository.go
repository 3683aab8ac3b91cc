package repository

import (
	"errors"
	"math"
	"time"

	"ulearner_backend/internal/model"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertRetries bounds re-runs of the upsert transaction when two first-ever
// writes for the same (user, lesson) pair race: the loser hits the unique
// index or is picked as a deadlock victim, and its retry takes the update
// path instead.
const upsertRetries = 3

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert writes the progress record for a (user, lesson) pair, creating it on
// first touch. Completed and ProgressPercentage are overwritten as given
// (last-write-wins), LastAccessedAt is refreshed on every write.
//
// The read-modify-write runs in one transaction with a row lock so the sticky
// CompletedAt rule holds under concurrent writes: it is set only on the first
// transition into completed and never cleared or overwritten afterwards.
// A write that loses a race is retried, never surfaced as a conflict.
func (r *ProgressRepository) Upsert(userID, lessonID uint, completed bool, percentage int) (*model.Progress, error) {
	var progress model.Progress
	var err error

	for attempt := 0; attempt < upsertRetries; attempt++ {
		progress = model.Progress{}
		err = r.upsertTx(&progress, userID, lessonID, completed, percentage)
		if err == nil {
			return &progress, nil
		}
		if !retryableUpsertError(err) {
			return nil, err
		}
	}
	return nil, err
}

func (r *ProgressRepository) upsertTx(progress *model.Progress, userID, lessonID uint, completed bool, percentage int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND lesson_id = ?", userID, lessonID).
			First(progress).Error

		now := time.Now()

		if errors.Is(err, gorm.ErrRecordNotFound) {
			*progress = model.Progress{
				UserID:             userID,
				LessonID:           lessonID,
				Completed:          completed,
				ProgressPercentage: percentage,
				LastAccessedAt:     now,
			}
			if completed {
				progress.CompletedAt = &now
			}
			return tx.Create(progress).Error
		}
		if err != nil {
			return err
		}

		progress.Completed = completed
		progress.ProgressPercentage = percentage
		progress.LastAccessedAt = now
		if completed && progress.CompletedAt == nil {
			progress.CompletedAt = &now
		}
		return tx.Save(progress).Error
	})
}

// retryableUpsertError reports whether a failed upsert transaction should be
// re-run: the loser of a first-touch race sees either the unique index
// violation or, on MySQL, a deadlock victim / lock wait timeout.
func retryableUpsertError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}

func (r *ProgressRepository) FindByUserAndLesson(userID, lessonID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) FindByUserID(userID uint) ([]model.Progress, error) {
	var records []model.Progress
	err := r.DB.Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

// CompletionPercentage computes the course completion aggregate at read time:
// completed lessons over total lessons, as a percentage rounded to two
// decimals. A course with no lessons yields 0, never a division error.
func (r *ProgressRepository) CompletionPercentage(userID, courseID uint) (float64, error) {
	var totalLessons int64
	err := r.DB.Model(&model.Lesson{}).Where("course_id = ?", courseID).Count(&totalLessons).Error
	if err != nil {
		return 0, err
	}
	if totalLessons == 0 {
		return 0, nil
	}

	var completedLessons int64
	err = r.DB.Model(&model.Progress{}).
		Joins("JOIN lessons ON lessons.id = progress.lesson_id").
		Where("progress.user_id = ? AND lessons.course_id = ? AND progress.completed = ? AND lessons.deleted_at IS NULL",
			userID, courseID, true).
		Count(&completedLessons).Error
	if err != nil {
		return 0, err
	}

	pct := 100.0 * float64(completedLessons) / float64(totalLessons)
	return math.Round(pct*100) / 100, nil
}
