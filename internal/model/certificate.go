package model

import "time"

// Certificate is the ledger entry proving course completion. The composite
// unique index on (user_id, course_id) is the idempotency backstop for
// concurrent issuance; certificate_number is the public shareable identifier.
//
// Certificates are never deleted. Revocation only flips Verified.
// swagger:model Certificate
type Certificate struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CertificateNumber string    `gorm:"size:40;uniqueIndex;not null" json:"certificateNumber"`
	UserID            uint      `gorm:"uniqueIndex:idx_user_course_certificate;not null" json:"userId"`
	CourseID          uint      `gorm:"uniqueIndex:idx_user_course_certificate;not null" json:"courseId"`
	IssuedAt          time.Time `gorm:"not null" json:"issuedAt"`
	CompletedAt       time.Time `gorm:"not null" json:"completedAt"`
	Verified          bool      `gorm:"default:true;not null" json:"verified"`
	User              User      `gorm:"foreignKey:UserID" json:"-"`
	Course            Course    `gorm:"foreignKey:CourseID" json:"-"`
}

func (Certificate) TableName() string {
	return "certificates"
}
