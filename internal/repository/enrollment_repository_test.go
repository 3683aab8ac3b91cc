package repository

import (
	"testing"

	"ulearner_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollTwiceIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewEnrollmentRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	course, _ := seedCourse(t, db, user.ID, 1)

	require.NoError(t, repo.Enroll(user.ID, course.ID))
	require.NoError(t, repo.Enroll(user.ID, course.ID))

	var count int64
	require.NoError(t, db.Model(&model.Enrollment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	enrolled, err := repo.IsEnrolled(user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestIsEnrolledFalseWhenNotEnrolled(t *testing.T) {
	db := newTestDB(t)
	repo := NewEnrollmentRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	course, _ := seedCourse(t, db, user.ID, 1)

	enrolled, err := repo.IsEnrolled(user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)
}
