package repository

import (
	"ulearner_backend/internal/model"

	"gorm.io/gorm"
)

// CertificateRepository is the certificate ledger. Uniqueness of both the
// certificate number and the (user, course) pair is enforced by database
// constraints, not application-level checks; callers translate
// gorm.ErrDuplicatedKey into their own idempotency handling.
type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) Create(cert *model.Certificate) error {
	return r.DB.Create(cert).Error
}

func (r *CertificateRepository) Save(cert *model.Certificate) error {
	return r.DB.Save(cert).Error
}

func (r *CertificateRepository) FindByNumber(certificateNumber string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Preload("User").Preload("Course").Preload("Course.Instructor").
		Where("certificate_number = ?", certificateNumber).
		First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) FindByUserAndCourse(userID, courseID uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Preload("User").Preload("Course").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// FindByUserID returns the user's certificates ordered by issuance time,
// oldest first.
func (r *CertificateRepository) FindByUserID(userID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Preload("Course").
		Where("user_id = ?", userID).
		Order("issued_at ASC").
		Find(&certs).Error
	return certs, err
}
