package repository

import (
	"testing"
	"time"

	"ulearner_backend/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. The pool is pinned to
// a single connection so the :memory: database is shared and concurrent
// transactions serialize instead of tripping over SQLite's write lock.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.Progress{},
		&model.Certificate{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:     email,
		Password:  "x",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      model.RoleStudent,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, instructorID uint, lessonCount int) (*model.Course, []model.Lesson) {
	t.Helper()
	course := &model.Course{
		Title:        "Go Fundamentals",
		Published:    true,
		InstructorID: instructorID,
	}
	require.NoError(t, db.Create(course).Error)

	lessons := make([]model.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := model.Lesson{
			Title:      "Lesson",
			OrderIndex: i,
			CourseID:   course.ID,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return course, lessons
}

func issuedCert(userID, courseID uint, number string, issuedAt time.Time) *model.Certificate {
	return &model.Certificate{
		CertificateNumber: number,
		UserID:            userID,
		CourseID:          courseID,
		IssuedAt:          issuedAt,
		CompletedAt:       issuedAt,
		Verified:          true,
	}
}
