package service

import (
	"errors"

	"ulearner_backend/internal/model"
	"ulearner_backend/internal/repository"
	"ulearner_backend/internal/util"

	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo   *repository.LessonRepository
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
) *LessonService {
	return &LessonService{
		LessonRepo:   lessonRepo,
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
	}
}

// swagger:model LessonView
type LessonView struct {
	ID                 uint   `json:"id"`
	Title              string `json:"title"`
	Content            string `json:"content"`
	OrderIndex         int    `json:"orderIndex"`
	Duration           int    `json:"duration"`
	VideoURL           string `json:"videoUrl"`
	CourseID           uint   `json:"courseId"`
	Completed          bool   `json:"completed"`
	ProgressPercentage int    `json:"progressPercentage"`
}

type LessonInput struct {
	Title      string
	Content    string
	OrderIndex int
	Duration   int
	VideoURL   string
}

// GetCourseLessons lists lessons in display order, overlaying the viewer's
// progress when userID is non-zero.
func (s *LessonService) GetCourseLessons(courseID, userID uint) ([]LessonView, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	lessons, err := s.LessonRepo.FindByCourseID(courseID)
	if err != nil {
		return nil, err
	}

	views := make([]LessonView, 0, len(lessons))
	for i := range lessons {
		view := toLessonView(&lessons[i], nil)
		if userID != 0 {
			if progress, err := s.ProgressRepo.FindByUserAndLesson(userID, lessons[i].ID); err == nil {
				view = toLessonView(&lessons[i], progress)
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *LessonService) GetLesson(lessonID, userID uint) (*LessonView, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	var progress *model.Progress
	if userID != 0 {
		progress, _ = s.ProgressRepo.FindByUserAndLesson(userID, lessonID)
	}

	view := toLessonView(lesson, progress)
	return &view, nil
}

func (s *LessonService) CreateLesson(courseID, instructorID uint, in LessonInput) (*model.Lesson, error) {
	if err := s.checkOwnership(courseID, instructorID); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		Title:      in.Title,
		Content:    in.Content,
		OrderIndex: in.OrderIndex,
		Duration:   in.Duration,
		VideoURL:   in.VideoURL,
		CourseID:   courseID,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) UpdateLesson(lessonID, instructorID uint, in LessonInput) (*model.Lesson, error) {
	lesson, err := s.ownedLesson(lessonID, instructorID)
	if err != nil {
		return nil, err
	}

	lesson.Title = in.Title
	lesson.Content = in.Content
	lesson.OrderIndex = in.OrderIndex
	lesson.Duration = in.Duration
	lesson.VideoURL = in.VideoURL

	if err := s.LessonRepo.Save(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// DeleteLesson removes the lesson and its progress records. Course completion
// percentages shift accordingly on the next read since the aggregate is
// recomputed per call.
func (s *LessonService) DeleteLesson(lessonID, instructorID uint) error {
	lesson, err := s.ownedLesson(lessonID, instructorID)
	if err != nil {
		return err
	}
	return s.LessonRepo.Delete(lesson)
}

func (s *LessonService) checkOwnership(courseID, instructorID uint) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrCourseNotFound
	}
	if err != nil {
		return err
	}
	if course.InstructorID != instructorID {
		return util.ErrPermissionDenied
	}
	return nil
}

func (s *LessonService) ownedLesson(lessonID, instructorID uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	if lesson.Course.InstructorID != instructorID {
		return nil, util.ErrPermissionDenied
	}
	return lesson, nil
}

func toLessonView(lesson *model.Lesson, progress *model.Progress) LessonView {
	view := LessonView{
		ID:         lesson.ID,
		Title:      lesson.Title,
		Content:    lesson.Content,
		OrderIndex: lesson.OrderIndex,
		Duration:   lesson.Duration,
		VideoURL:   lesson.VideoURL,
		CourseID:   lesson.CourseID,
	}
	if progress != nil {
		view.Completed = progress.Completed
		view.ProgressPercentage = progress.ProgressPercentage
	}
	return view
}
