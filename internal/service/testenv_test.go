package service

import (
	"testing"

	"ulearner_backend/internal/config"
	"ulearner_backend/internal/model"
	"ulearner_backend/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db           *gorm.DB
	cfg          *config.Config
	certificates *CertificateService
	progress     *ProgressService
	courses      *CourseService
}

func newTestEnv(t *testing.T) *testEnv {
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

	cfg := &config.Config{}
	cfg.Certificate.NumberPrefix = "UL-"
	cfg.Certificate.VerifyBaseURL = "https://ulearner.com"

	certRepo := repository.NewCertificateRepository(db)
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	return &testEnv{
		db:           db,
		cfg:          cfg,
		certificates: NewCertificateService(certRepo, userRepo, courseRepo, progressRepo, cfg),
		progress:     NewProgressService(progressRepo, lessonRepo, nil),
		courses:      NewCourseService(courseRepo, userRepo, enrollmentRepo, progressRepo),
	}
}

func (e *testEnv) seedStudent(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:     email,
		Password:  "x",
		FirstName: "Grace",
		LastName:  "Hopper",
		Role:      model.RoleStudent,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) seedCourse(t *testing.T, lessonCount int) (*model.Course, []model.Lesson) {
	t.Helper()
	instructor := &model.User{
		Email:     "instructor@ulearner.com",
		Password:  "x",
		FirstName: "Alan",
		LastName:  "Turing",
		Role:      model.RoleInstructor,
	}
	err := e.db.Where(model.User{Email: instructor.Email}).FirstOrCreate(instructor).Error
	require.NoError(t, err)

	course := &model.Course{
		Title:        "Distributed Systems",
		Published:    true,
		InstructorID: instructor.ID,
	}
	require.NoError(t, e.db.Create(course).Error)

	lessons := make([]model.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := model.Lesson{
			Title:      "Lesson",
			OrderIndex: i,
			CourseID:   course.ID,
		}
		require.NoError(t, e.db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return course, lessons
}

func (e *testEnv) completeCourse(t *testing.T, userID uint, lessons []model.Lesson) {
	t.Helper()
	for _, lesson := range lessons {
		_, err := e.progress.UpdateProgress(userID, lesson.ID, true, 100)
		require.NoError(t, err)
	}
}
