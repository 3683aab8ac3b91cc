package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCertificateDuplicatePairRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewCertificateRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	course, _ := seedCourse(t, db, user.ID, 1)

	now := time.Now()
	require.NoError(t, repo.Create(issuedCert(user.ID, course.ID, "UL-AAAA11112222", now)))

	// Same pair under a different number must hit the ledger constraint.
	err := repo.Create(issuedCert(user.ID, course.ID, "UL-BBBB33334444", now))
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCertificateDuplicateNumberRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewCertificateRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	courseA, _ := seedCourse(t, db, user.ID, 1)
	courseB, _ := seedCourse(t, db, user.ID, 1)

	now := time.Now()
	require.NoError(t, repo.Create(issuedCert(user.ID, courseA.ID, "UL-AAAA11112222", now)))

	err := repo.Create(issuedCert(user.ID, courseB.ID, "UL-AAAA11112222", now))
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCertificateFindByNumberPreloadsAssociations(t *testing.T) {
	db := newTestDB(t)
	repo := NewCertificateRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	course, _ := seedCourse(t, db, user.ID, 1)
	require.NoError(t, repo.Create(issuedCert(user.ID, course.ID, "UL-AAAA11112222", time.Now())))

	cert, err := repo.FindByNumber("UL-AAAA11112222")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", cert.User.FullName())
	assert.Equal(t, course.Title, cert.Course.Title)
	assert.Equal(t, "Ada Lovelace", cert.Course.Instructor.FullName())
}

func TestCertificateFindByUserIDOrderedByIssuance(t *testing.T) {
	db := newTestDB(t)
	repo := NewCertificateRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	courseA, _ := seedCourse(t, db, user.ID, 1)
	courseB, _ := seedCourse(t, db, user.ID, 1)
	courseC, _ := seedCourse(t, db, user.ID, 1)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(issuedCert(user.ID, courseB.ID, "UL-BBBB00000000", base.Add(20*time.Minute))))
	require.NoError(t, repo.Create(issuedCert(user.ID, courseC.ID, "UL-CCCC00000000", base.Add(40*time.Minute))))
	require.NoError(t, repo.Create(issuedCert(user.ID, courseA.ID, "UL-AAAA00000000", base)))

	certs, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, certs, 3)
	assert.Equal(t, "UL-AAAA00000000", certs[0].CertificateNumber)
	assert.Equal(t, "UL-BBBB00000000", certs[1].CertificateNumber)
	assert.Equal(t, "UL-CCCC00000000", certs[2].CertificateNumber)
}

func TestCertificateFindByUserAndCourseNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewCertificateRepository(db)

	user := seedUser(t, db, "student@ulearner.com")
	course, _ := seedCourse(t, db, user.ID, 1)

	_, err := repo.FindByUserAndCourse(user.ID, course.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
