package model

// Lesson belongs to exactly one course. OrderIndex drives display order and is
// deliberately not unique within a course.
// swagger:model Lesson
type Lesson struct {
	BaseModel
	Title      string `gorm:"size:255;not null" json:"title"`
	Content    string `gorm:"size:5000" json:"content"`
	OrderIndex int    `json:"orderIndex"`
	Duration   int    `json:"duration"` // minutes
	VideoURL   string `gorm:"size:255" json:"videoUrl"`
	CourseID   uint   `gorm:"index;not null" json:"courseId"`
	Course     Course `gorm:"foreignKey:CourseID" json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}
