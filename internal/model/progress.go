package model

import "time"

// Progress is the per-student, per-lesson completion record. At most one row
// exists per (user, lesson) pair.
//
// CompletedAt is sticky: it is set the first time Completed transitions to
// true and survives any later un-complete/re-complete cycle. A completion
// timestamp is a historical fact, not current state.
// swagger:model Progress
type Progress struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uint       `gorm:"uniqueIndex:idx_user_lesson;not null" json:"userId"`
	LessonID           uint       `gorm:"uniqueIndex:idx_user_lesson;not null" json:"lessonId"`
	Completed          bool       `gorm:"default:false" json:"completed"`
	ProgressPercentage int        `gorm:"default:0" json:"progressPercentage"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	LastAccessedAt     time.Time  `json:"lastAccessedAt"`
	Lesson             Lesson     `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Progress) TableName() string {
	return "progress"
}
