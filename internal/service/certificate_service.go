package service

import (
	"errors"
	"strings"
	"time"

	"ulearner_backend/internal/config"
	"ulearner_backend/internal/model"
	"ulearner_backend/internal/repository"
	"ulearner_backend/internal/util"
	"ulearner_backend/pkg/logger"
	"ulearner_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// issueRetries bounds number-collision retries. The suffix carries 48 bits of
// entropy, so more than one retry is already extraordinary; the loop exists
// because the ledger's unique constraint is the actual uniqueness guarantee.
const issueRetries = 5

// CertificateService is the certification engine. A (user, course) pair moves
// from not-eligible to eligible when the completion aggregate reaches 100, and
// to certified when a ledger row exists. There is no transition back;
// revocation only flips the Verified flag.
type CertificateService struct {
	CertRepo     *repository.CertificateRepository
	UserRepo     *repository.UserRepository
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
	Cfg          *config.Config
}

func NewCertificateService(
	certRepo *repository.CertificateRepository,
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
	cfg *config.Config,
) *CertificateService {
	return &CertificateService{
		CertRepo:     certRepo,
		UserRepo:     userRepo,
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		Cfg:          cfg,
	}
}

// swagger:model VerificationResult
type VerificationResult struct {
	Valid             bool       `json:"valid"`
	CertificateNumber string     `json:"certificateNumber"`
	StudentName       string     `json:"studentName,omitempty"`
	CourseName        string     `json:"courseName,omitempty"`
	IssuedAt          *time.Time `json:"issuedAt,omitempty"`
	Message           string     `json:"message"`
}

// Issue creates the certificate for a fully completed course, or returns the
// existing one. Repeated calls for an already certified pair are
// side-effect-free and return the same certificate.
func (s *CertificateService) Issue(userID, courseID uint) (*model.Certificate, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if cert, err := s.CertRepo.FindByUserAndCourse(userID, courseID); err == nil {
		return cert, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Always recomputed from the progress store; the cached aggregate is
	// never consulted for the eligibility gate.
	pct, err := s.ProgressRepo.CompletionPercentage(userID, courseID)
	if err != nil {
		return nil, err
	}
	if pct < 100 {
		return nil, &util.NotEligibleError{Percentage: pct}
	}

	for attempt := 0; attempt < issueRetries; attempt++ {
		now := time.Now()
		cert := &model.Certificate{
			CertificateNumber: s.generateCertificateNumber(),
			UserID:            userID,
			CourseID:          courseID,
			IssuedAt:          now,
			CompletedAt:       now,
			Verified:          true,
		}

		err := s.CertRepo.Create(cert)
		if err == nil {
			monitoring.CertificatesIssued.Inc()
			logger.Log.Info("Certificate issued",
				zap.Uint("userId", userID),
				zap.Uint("courseId", courseID),
				zap.String("certificateNumber", cert.CertificateNumber))
			return s.CertRepo.FindByNumber(cert.CertificateNumber)
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Either a concurrent request won the (user, course) race, in
			// which case the winner's record is the result, or the number
			// collided and a fresh one is worth a retry.
			if existing, findErr := s.CertRepo.FindByUserAndCourse(userID, courseID); findErr == nil {
				return existing, nil
			}
			continue
		}
		return nil, err
	}

	return nil, errors.New("failed to allocate a unique certificate number")
}

// Verify resolves a certificate number for third-party verification. It never
// fails: an unknown number yields an invalid result, not an error.
func (s *CertificateService) Verify(certificateNumber string) *VerificationResult {
	cert, err := s.CertRepo.FindByNumber(certificateNumber)
	if err != nil {
		return &VerificationResult{
			Valid:             false,
			CertificateNumber: certificateNumber,
			Message:           "Certificate not found",
		}
	}

	message := "Certificate is valid"
	if !cert.Verified {
		message = "Certificate has been revoked"
	}

	issuedAt := cert.IssuedAt
	return &VerificationResult{
		Valid:             cert.Verified,
		CertificateNumber: cert.CertificateNumber,
		StudentName:       cert.User.FullName(),
		CourseName:        cert.Course.Title,
		IssuedAt:          &issuedAt,
		Message:           message,
	}
}

// UserCertificates lists the user's certificates, oldest issuance first.
func (s *CertificateService) UserCertificates(userID uint) ([]model.Certificate, error) {
	return s.CertRepo.FindByUserID(userID)
}

// Revoke flips the Verified flag. The ledger row itself is immutable audit
// trail and is never deleted.
func (s *CertificateService) Revoke(certificateNumber string) (*model.Certificate, error) {
	cert, err := s.CertRepo.FindByNumber(certificateNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCertificateNotFound
	}
	if err != nil {
		return nil, err
	}

	cert.Verified = false
	if err := s.CertRepo.Save(cert); err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *CertificateService) generateCertificateNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
	return s.Cfg.Certificate.NumberPrefix + suffix
}
