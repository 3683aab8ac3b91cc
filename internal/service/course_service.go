package service

import (
	"errors"
	"time"

	"ulearner_backend/internal/model"
	"ulearner_backend/internal/repository"
	"ulearner_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	UserRepo       *repository.UserRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		UserRepo:       userRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
	}
}

// swagger:model CourseSummary
type CourseSummary struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl"`
	Difficulty    string    `json:"difficulty"`
	Duration      int       `json:"duration"`
	Published     bool      `json:"published"`
	Instructor    string    `json:"instructor"`
	LessonsCount  int64     `json:"lessonsCount"`
	EnrolledCount int64     `json:"enrolledCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// swagger:model CourseDetail
type CourseDetail struct {
	CourseSummary
	IsEnrolled           bool    `json:"isEnrolled"`
	CompletionPercentage float64 `json:"completionPercentage"`
}

type CourseInput struct {
	Title       string
	Description string
	ImageURL    string
	Difficulty  string
	Duration    int
}

func (s *CourseService) GetPublishedCourses() ([]CourseSummary, error) {
	courses, err := s.CourseRepo.FindPublished()
	if err != nil {
		return nil, err
	}
	return s.summarize(courses)
}

func (s *CourseService) SearchCourses(keyword string) ([]CourseSummary, error) {
	courses, err := s.CourseRepo.SearchPublished(keyword)
	if err != nil {
		return nil, err
	}
	return s.summarize(courses)
}

// GetCourseDetail returns the course plus the viewer's enrollment state and
// completion percentage. userID 0 means an anonymous viewer.
func (s *CourseService) GetCourseDetail(courseID, userID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	summary, err := s.toSummary(course)
	if err != nil {
		return nil, err
	}
	detail := &CourseDetail{CourseSummary: summary}

	if userID != 0 {
		enrolled, err := s.EnrollmentRepo.IsEnrolled(userID, courseID)
		if err != nil {
			return nil, err
		}
		detail.IsEnrolled = enrolled

		pct, err := s.ProgressRepo.CompletionPercentage(userID, courseID)
		if err != nil {
			return nil, err
		}
		detail.CompletionPercentage = pct
	}

	return detail, nil
}

func (s *CourseService) CreateCourse(instructorID uint, in CourseInput) (*model.Course, error) {
	course := &model.Course{
		Title:        in.Title,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		Difficulty:   in.Difficulty,
		Duration:     in.Duration,
		InstructorID: instructorID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(courseID, instructorID uint, in CourseInput) (*model.Course, error) {
	course, err := s.ownedCourse(courseID, instructorID)
	if err != nil {
		return nil, err
	}

	course.Title = in.Title
	course.Description = in.Description
	course.ImageURL = in.ImageURL
	course.Difficulty = in.Difficulty
	course.Duration = in.Duration

	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) PublishCourse(courseID, instructorID uint) (*model.Course, error) {
	course, err := s.ownedCourse(courseID, instructorID)
	if err != nil {
		return nil, err
	}

	course.Published = true
	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Enroll(courseID, userID uint) error {
	_, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrCourseNotFound
	}
	if err != nil {
		return err
	}
	return s.EnrollmentRepo.Enroll(userID, courseID)
}

func (s *CourseService) GetEnrolledCourses(userID uint) ([]CourseSummary, error) {
	courses, err := s.EnrollmentRepo.FindCoursesByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(courses)
}

func (s *CourseService) GetInstructorCourses(instructorID uint) ([]CourseSummary, error) {
	courses, err := s.CourseRepo.FindByInstructorID(instructorID)
	if err != nil {
		return nil, err
	}
	return s.summarize(courses)
}

func (s *CourseService) ownedCourse(courseID, instructorID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CourseService) summarize(courses []model.Course) ([]CourseSummary, error) {
	out := make([]CourseSummary, 0, len(courses))
	for i := range courses {
		summary, err := s.toSummary(&courses[i])
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}

func (s *CourseService) toSummary(course *model.Course) (CourseSummary, error) {
	lessons, err := s.CourseRepo.CountLessons(course.ID)
	if err != nil {
		return CourseSummary{}, err
	}
	enrolled, err := s.EnrollmentRepo.CountByCourseID(course.ID)
	if err != nil {
		return CourseSummary{}, err
	}
	return CourseSummary{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		ImageURL:      course.ImageURL,
		Difficulty:    course.Difficulty,
		Duration:      course.Duration,
		Published:     course.Published,
		Instructor:    course.Instructor.FullName(),
		LessonsCount:  lessons,
		EnrolledCount: enrolled,
		CreatedAt:     course.CreatedAt,
	}, nil
}
