package service

import (
	"testing"

	"ulearner_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishedCourseSummariesCarryCounts(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedStudent(t, "grace@ulearner.com")
	course, _ := env.seedCourse(t, 2)

	require.NoError(t, env.courses.Enroll(course.ID, student.ID))

	summaries, err := env.courses.GetPublishedCourses()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(2), summaries[0].LessonsCount)
	assert.Equal(t, int64(1), summaries[0].EnrolledCount)
	assert.Equal(t, "Alan Turing", summaries[0].Instructor)
}

func TestCourseSummariesPropagateCountErrors(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourse(t, 1)

	// With the lessons table gone the count query fails; the summary must
	// report that instead of rendering a zero.
	require.NoError(t, env.db.Migrator().DropTable(&model.Lesson{}))

	_, err := env.courses.GetPublishedCourses()
	assert.Error(t, err)
}

func TestGetCourseDetailForViewer(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedStudent(t, "grace@ulearner.com")
	course, lessons := env.seedCourse(t, 2)

	require.NoError(t, env.courses.Enroll(course.ID, student.ID))
	_, err := env.progress.UpdateProgress(student.ID, lessons[0].ID, true, 100)
	require.NoError(t, err)

	detail, err := env.courses.GetCourseDetail(course.ID, student.ID)
	require.NoError(t, err)
	assert.True(t, detail.IsEnrolled)
	assert.Equal(t, 50.0, detail.CompletionPercentage)

	anonymous, err := env.courses.GetCourseDetail(course.ID, 0)
	require.NoError(t, err)
	assert.False(t, anonymous.IsEnrolled)
	assert.Equal(t, 0.0, anonymous.CompletionPercentage)
}
