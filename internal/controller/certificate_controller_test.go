package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ulearner_backend/internal/config"
	"ulearner_backend/internal/middleware"
	"ulearner_backend/internal/model"
	"ulearner_backend/internal/repository"
	"ulearner_backend/internal/service"
	"ulearner_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type apiFixture struct {
	db     *gorm.DB
	cfg    *config.Config
	router *gin.Engine
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Course{}, &model.Lesson{},
		&model.Enrollment{}, &model.Progress{}, &model.Certificate{},
	))

	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}
	cfg.Certificate.NumberPrefix = "UL-"
	cfg.Certificate.VerifyBaseURL = "https://ulearner.com"

	certRepo := repository.NewCertificateRepository(db)
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	certService := service.NewCertificateService(certRepo, userRepo, courseRepo, progressRepo, cfg)
	progressService := service.NewProgressService(progressRepo, lessonRepo, nil)

	certController := NewCertificateController(certService)
	progressController := NewProgressController(progressService)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/certificates/verify/:certificateNumber", certController.Verify)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	authed.POST("/progress/lessons/:lessonId", progressController.UpdateProgress)
	authed.POST("/certificates/generate/:courseId", certController.Generate)
	authed.GET("/certificates/:certificateNumber/pdf", certController.Download)

	return &apiFixture{db: db, cfg: cfg, router: router}
}

func (f *apiFixture) seedStudentWithCourse(t *testing.T, lessonCount int) (*model.User, string, *model.Course, []model.Lesson) {
	t.Helper()
	student := &model.User{
		Email: "grace@ulearner.com", Password: "x",
		FirstName: "Grace", LastName: "Hopper", Role: model.RoleStudent,
	}
	require.NoError(t, f.db.Create(student).Error)

	course := &model.Course{Title: "Compilers", Published: true, InstructorID: student.ID}
	require.NoError(t, f.db.Create(course).Error)

	lessons := make([]model.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := model.Lesson{Title: "Lesson", OrderIndex: i, CourseID: course.ID}
		require.NoError(t, f.db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}

	token, err := util.GenerateJWT(student, f.cfg.JWT.Secret, f.cfg.JWT.ExpireTime)
	require.NoError(t, err)
	return student, token, course, lessons
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestVerifyEndpointUnknownNumber(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/certificates/verify/UL-DOESNOTEXIST", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data service.VerificationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Valid)
	assert.Equal(t, "Certificate not found", resp.Data.Message)
}

func TestProgressEndpointRequiresAuth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/progress/lessons/1", "",
		gin.H{"completed": true, "progressPercentage": 100})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateBeforeCompletionReturnsProgress(t *testing.T) {
	f := newAPIFixture(t)
	_, token, course, lessons := f.seedStudentWithCourse(t, 2)

	rec := f.do(t, http.MethodPost,
		fmt.Sprintf("/api/progress/lessons/%d", lessons[0].ID), token,
		gin.H{"completed": true, "progressPercentage": 100})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost,
		fmt.Sprintf("/api/certificates/generate/%d", course.ID), token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message string `json:"message"`
		Data    struct {
			CompletionPercentage float64 `json:"completionPercentage"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 50.0, resp.Data.CompletionPercentage)
	assert.Contains(t, resp.Message, "50.00%")
}

func TestGenerateAndDownloadFlow(t *testing.T) {
	f := newAPIFixture(t)
	_, token, course, lessons := f.seedStudentWithCourse(t, 2)

	for _, lesson := range lessons {
		rec := f.do(t, http.MethodPost,
			fmt.Sprintf("/api/progress/lessons/%d", lesson.ID), token,
			gin.H{"completed": true, "progressPercentage": 100})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := f.do(t, http.MethodPost,
		fmt.Sprintf("/api/certificates/generate/%d", course.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data model.Certificate `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.CertificateNumber)

	rec = f.do(t, http.MethodGet,
		"/api/certificates/"+resp.Data.CertificateNumber+"/pdf", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}
