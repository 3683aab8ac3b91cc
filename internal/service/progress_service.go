package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ulearner_backend/internal/model"
	"ulearner_backend/internal/repository"
	"ulearner_backend/internal/util"
	"ulearner_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// completionCacheTTL bounds staleness when the Redis cache is enabled. Every
// progress write for the course invalidates the key anyway; the TTL only
// covers writes that bypass this service.
const completionCacheTTL = 5 * time.Minute

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
	Redis        *redis.Client // nil disables the completion cache
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	lessonRepo *repository.LessonRepository,
	rdb *redis.Client,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
		Redis:        rdb,
	}
}

// UpdateProgress records a progress write for a (user, lesson) pair. The
// percentage is clamped to [0,100]; it is not re-derived from completed, so
// completed=true with percentage 40 is stored as given.
func (s *ProgressService) UpdateProgress(userID, lessonID uint, completed bool, percentage int) (*model.Progress, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	if percentage < 0 {
		percentage = 0
	} else if percentage > 100 {
		percentage = 100
	}

	progress, err := s.ProgressRepo.Upsert(userID, lessonID, completed, percentage)
	if err != nil {
		return nil, err
	}

	monitoring.ProgressUpdates.Inc()
	s.invalidateCompletion(userID, lesson.CourseID)

	return progress, nil
}

func (s *ProgressService) GetProgress(userID, lessonID uint) (*model.Progress, error) {
	progress, err := s.ProgressRepo.FindByUserAndLesson(userID, lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // never touched
	}
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *ProgressService) GetUserProgress(userID uint) ([]model.Progress, error) {
	return s.ProgressRepo.FindByUserID(userID)
}

// GetCourseCompletion returns the course completion percentage for the user,
// consulting the Redis cache when one is wired.
func (s *ProgressService) GetCourseCompletion(userID, courseID uint) (float64, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(context.Background(), completionKey(userID, courseID)).Result()
		if err == nil {
			if pct, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
				return pct, nil
			}
		}
	}

	pct, err := s.ProgressRepo.CompletionPercentage(userID, courseID)
	if err != nil {
		return 0, err
	}

	if s.Redis != nil {
		s.Redis.Set(context.Background(), completionKey(userID, courseID),
			strconv.FormatFloat(pct, 'f', 2, 64), completionCacheTTL)
	}

	return pct, nil
}

func (s *ProgressService) invalidateCompletion(userID, courseID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), completionKey(userID, courseID))
}

func completionKey(userID, courseID uint) string {
	return fmt.Sprintf("completion:%d:%d", userID, courseID)
}
