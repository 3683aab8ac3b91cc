package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// NotEligibleError is returned when certificate issuance is requested before a
// course is fully completed. It carries the current completion percentage so
// the caller can show progress feedback.
type NotEligibleError struct {
	Percentage float64
}

func (e *NotEligibleError) Error() string {
	return fmt.Sprintf("course not completed yet, current progress: %.2f%%", e.Percentage)
}
