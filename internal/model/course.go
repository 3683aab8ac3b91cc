package model

// swagger:model Course
type Course struct {
	BaseModel
	Title        string   `gorm:"size:255;not null" json:"title"`
	Description  string   `gorm:"size:2000" json:"description"`
	ImageURL     string   `gorm:"size:255" json:"imageUrl"`
	Difficulty   string   `gorm:"size:50" json:"difficulty"`
	Duration     int      `json:"duration"` // estimated hours
	Published    bool     `gorm:"default:false" json:"published"`
	InstructorID uint     `gorm:"index;not null" json:"instructorId"`
	Instructor   User     `gorm:"foreignKey:InstructorID" json:"-"`
	Lessons      []Lesson `gorm:"foreignKey:CourseID" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}
