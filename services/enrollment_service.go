package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushub/campus-hub-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrollmentService owns the enrollment lifecycle and the capacity
// invariant: the count of enrolled students for a course never
// exceeds its declared capacity.
type EnrollmentService struct {
	db    *gorm.DB
	audit *AuditService
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(db *gorm.DB, audit *AuditService) *EnrollmentService {
	return &EnrollmentService{db: db, audit: audit}
}

// Enroll creates an enrollment for (studentID, courseID).
//
// The capacity check and the insert run in one transaction holding a
// row lock on the course, so concurrent enrollments for the same
// course serialize: with one seat left, two racing calls resolve to
// exactly one success. The duplicate check fires before the capacity
// check, so re-enrolling at a full course still reports the conflict.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SQLite has no FOR UPDATE; its single-writer transactions
		// already serialize this block.
		courseQuery := tx
		if tx.Dialector.Name() != "sqlite" {
			courseQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var course model.Course
		if err := courseQuery.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&model.Enrollment{}).
			Where("student_id = ? AND course_id = ?", studentID, courseID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyEnrolled
		}

		var enrolled int64
		if err := tx.Model(&model.Enrollment{}).
			Where("course_id = ? AND status = ?", courseID, model.EnrollmentEnrolled).
			Count(&enrolled).Error; err != nil {
			return err
		}
		if enrolled >= int64(course.Capacity) {
			return ErrCourseFull
		}

		enrollment = model.Enrollment{
			StudentID: studentID,
			CourseID:  courseID,
			Status:    model.EnrollmentEnrolled,
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(&studentID, fmt.Sprintf("Enrolled in course: %d", courseID), nil)

	return &enrollment, nil
}

// Unenroll deletes an enrollment. Only the enrolled student may
// remove it; the existence check runs before the ownership check so a
// missing enrollment reports not-found, not forbidden.
func (s *EnrollmentService) Unenroll(ctx context.Context, enrollmentID, requesterID uint) error {
	var enrollment model.Enrollment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&enrollment, enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		if enrollment.StudentID != requesterID {
			return ErrNotOwner
		}

		return tx.Delete(&enrollment).Error
	})
	if err != nil {
		return err
	}

	s.audit.Record(&requesterID, fmt.Sprintf("Unenrolled from course: %d", enrollment.CourseID), nil)

	return nil
}

// ListByStudent returns all enrollments held by one student.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := s.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("created_at").
		Find(&enrollments).Error
	return enrollments, err
}

// EnrolledCount returns the number of enrolled students for a course.
func (s *EnrollmentService) EnrolledCount(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, model.EnrollmentEnrolled).
		Count(&count).Error
	return count, err
}
