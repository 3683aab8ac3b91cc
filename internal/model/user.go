package model

import "strings"

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Email     string   `gorm:"size:100;unique;not null" json:"email"`
	Password  string   `gorm:"size:100;not null" json:"-"`
	FirstName string   `gorm:"size:100;not null" json:"firstName"`
	LastName  string   `gorm:"size:100;not null" json:"lastName"`
	Role      UserRole `gorm:"size:20;default:'student'" json:"role"`
	AvatarURL string   `gorm:"size:255" json:"avatarUrl"`
	Bio       string   `gorm:"size:1000" json:"bio"`
}

func (User) TableName() string {
	return "users"
}

// FullName is what certificates and verification responses display.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
