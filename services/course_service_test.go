package services

import (
	"context"
	"testing"

	"github.com/campushub/campus-hub-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db, NewAuditService(db))

	teacher := createTestUser(t, db, "prof", model.RoleTeacher)
	course := createTestCourse(t, db, teacher.ID, 30)

	got, err := svc.Get(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.Title, got.Title)
	assert.Equal(t, teacher.Username, got.Instructor.Username)
}

func TestCourseGetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db, NewAuditService(db))

	_, err := svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db, NewAuditService(db))

	teacher := createTestUser(t, db, "prof", model.RoleTeacher)

	course := model.Course{
		Title:        "Distributed Systems",
		InstructorID: teacher.ID,
		Credits:      4,
		Capacity:     25,
	}
	require.NoError(t, svc.Create(context.Background(), &course, teacher.ID))
	assert.NotZero(t, course.ID)
	assert.EqualValues(t, 1, auditCount(t, db))
}

func TestCourseDeleteCascadesEnrollments(t *testing.T) {
	db := newTestDB(t)
	audit := NewAuditService(db)
	courses := NewCourseService(db, audit)
	enrollments := NewEnrollmentService(db, audit)

	teacher := createTestUser(t, db, "prof", model.RoleTeacher)
	alice := createTestUser(t, db, "alice", model.RoleStudent)
	bob := createTestUser(t, db, "bob", model.RoleStudent)
	course := createTestCourse(t, db, teacher.ID, 30)

	_, err := enrollments.Enroll(context.Background(), alice.ID, course.ID)
	require.NoError(t, err)
	_, err = enrollments.Enroll(context.Background(), bob.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, courses.Delete(context.Background(), course.ID, teacher.ID))

	_, err = courses.Get(context.Background(), course.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	var remaining int64
	require.NoError(t, db.Model(&model.Enrollment{}).
		Where("course_id = ?", course.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestCourseDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db, NewAuditService(db))

	err := svc.Delete(context.Background(), 9999, 1)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestEnrolledCounts(t *testing.T) {
	db := newTestDB(t)
	audit := NewAuditService(db)
	courses := NewCourseService(db, audit)
	enrollments := NewEnrollmentService(db, audit)

	teacher := createTestUser(t, db, "prof", model.RoleTeacher)
	alice := createTestUser(t, db, "alice", model.RoleStudent)
	bob := createTestUser(t, db, "bob", model.RoleStudent)
	first := createTestCourse(t, db, teacher.ID, 30)
	second := createTestCourse(t, db, teacher.ID, 30)
	empty := createTestCourse(t, db, teacher.ID, 30)

	_, err := enrollments.Enroll(context.Background(), alice.ID, first.ID)
	require.NoError(t, err)
	_, err = enrollments.Enroll(context.Background(), bob.ID, first.ID)
	require.NoError(t, err)
	_, err = enrollments.Enroll(context.Background(), alice.ID, second.ID)
	require.NoError(t, err)

	counts, err := courses.EnrolledCounts(context.Background(),
		[]uint{first.ID, second.ID, empty.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[first.ID])
	assert.EqualValues(t, 1, counts[second.ID])
	assert.Zero(t, counts[empty.ID])
}
