package model

// Enrollment links a student to a course. The composite unique index makes
// repeated enrollment a no-op at the storage layer.
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID   uint   `gorm:"uniqueIndex:idx_user_course_enrollment;not null" json:"userId"`
	CourseID uint   `gorm:"uniqueIndex:idx_user_course_enrollment;not null" json:"courseId"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`
	Course   Course `gorm:"foreignKey:CourseID" json:"-"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
