package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"ulearner_backend/internal/model"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUpsertCreatesThenUpdates(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	_, lessons := seedCourse(t, db, user.ID, 1)
	lessonID := lessons[0].ID

	first, err := repo.Upsert(user.ID, lessonID, false, 30)
	require.NoError(t, err)
	assert.False(t, first.Completed)
	assert.Equal(t, 30, first.ProgressPercentage)
	assert.Nil(t, first.CompletedAt)

	second, err := repo.Upsert(user.ID, lessonID, false, 55)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 55, second.ProgressPercentage)

	var count int64
	require.NoError(t, db.Model(&model.Progress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertCompletedAtIsSticky(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	_, lessons := seedCourse(t, db, user.ID, 1)
	lessonID := lessons[0].ID

	completed, err := repo.Upsert(user.ID, lessonID, true, 100)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)

	stored, err := repo.FindByUserAndLesson(user.ID, lessonID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt)
	firstCompletion := *stored.CompletedAt

	// Marking the lesson not completed keeps the original timestamp.
	reverted, err := repo.Upsert(user.ID, lessonID, false, 80)
	require.NoError(t, err)
	assert.False(t, reverted.Completed)
	require.NotNil(t, reverted.CompletedAt)
	assert.True(t, firstCompletion.Equal(*reverted.CompletedAt))

	// So does completing it again.
	again, err := repo.Upsert(user.ID, lessonID, true, 100)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.True(t, firstCompletion.Equal(*again.CompletedAt))
}

func TestUpsertConcurrentWritesKeepOneRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	_, lessons := seedCourse(t, db, user.ID, 1)
	lessonID := lessons[0].ID

	const writers = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(pct int) {
			defer wg.Done()
			_, err := repo.Upsert(user.ID, lessonID, pct%2 == 0, pct*10)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&model.Progress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertRetriesWhenFirstTouchLosesRace(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	_, lessons := seedCourse(t, db, user.ID, 1)
	lessonID := lessons[0].ID

	// Sneak a conflicting row in right before the first create executes, the
	// way a concurrent first-touch writer would, so the create trips the
	// unique index.
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("simulate_lost_race", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "progress" {
			return
		}
		raced = true
		tx.Exec("INSERT INTO progress (user_id, lesson_id, completed, progress_percentage, last_accessed_at) VALUES (?, ?, ?, ?, ?)",
			user.ID, lessonID, true, 100, time.Now())
	})
	require.NoError(t, err)

	progress, err := repo.Upsert(user.ID, lessonID, false, 25)
	require.NoError(t, err)
	require.True(t, raced)
	assert.Equal(t, 25, progress.ProgressPercentage)
	assert.False(t, progress.Completed)

	var count int64
	require.NoError(t, db.Model(&model.Progress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRetryableUpsertError(t *testing.T) {
	assert.True(t, retryableUpsertError(gorm.ErrDuplicatedKey))
	assert.True(t, retryableUpsertError(&gomysql.MySQLError{Number: 1213}))
	assert.True(t, retryableUpsertError(&gomysql.MySQLError{Number: 1205}))
	assert.False(t, retryableUpsertError(gorm.ErrRecordNotFound))
	assert.False(t, retryableUpsertError(errors.New("write failed")))
}

func TestCompletionPercentage(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	course, lessons := seedCourse(t, db, user.ID, 3)

	pct, err := repo.CompletionPercentage(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)

	// Two of three lessons completed, one merely started.
	_, err = repo.Upsert(user.ID, lessons[0].ID, true, 100)
	require.NoError(t, err)
	_, err = repo.Upsert(user.ID, lessons[1].ID, true, 100)
	require.NoError(t, err)
	_, err = repo.Upsert(user.ID, lessons[2].ID, false, 50)
	require.NoError(t, err)

	pct, err = repo.CompletionPercentage(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 66.67, pct)

	_, err = repo.Upsert(user.ID, lessons[2].ID, true, 100)
	require.NoError(t, err)

	pct, err = repo.CompletionPercentage(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, pct)
}

func TestCompletionPercentageEmptyCourse(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	course, _ := seedCourse(t, db, user.ID, 0)

	pct, err := repo.CompletionPercentage(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)
}

func TestCompletionPercentageIgnoresOtherUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	alice := seedUser(t, db, "alice@ulearner.com")
	bob := seedUser(t, db, "bob@ulearner.com")
	course, lessons := seedCourse(t, db, alice.ID, 2)

	_, err := repo.Upsert(bob.ID, lessons[0].ID, true, 100)
	require.NoError(t, err)
	_, err = repo.Upsert(bob.ID, lessons[1].ID, true, 100)
	require.NoError(t, err)

	pct, err := repo.CompletionPercentage(alice.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)
}
