package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushub/campus-hub-api/model"
	"gorm.io/gorm"
)

// CourseService owns course CRUD. Ownership rules (only the owning
// instructor may mutate) are enforced by the handlers after loading
// the course, so not-found is reported before forbidden.
type CourseService struct {
	db    *gorm.DB
	audit *AuditService
}

// NewCourseService creates a new course service
func NewCourseService(db *gorm.DB, audit *AuditService) *CourseService {
	return &CourseService{db: db, audit: audit}
}

// Get loads one course with its instructor.
func (s *CourseService) Get(ctx context.Context, courseID uint) (*model.Course, error) {
	var course model.Course
	err := s.db.WithContext(ctx).Preload("Instructor").First(&course, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// List returns all courses with instructors preloaded.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := s.db.WithContext(ctx).Preload("Instructor").Order("created_at").Find(&courses).Error
	return courses, err
}

// Create persists a new course and audits it.
func (s *CourseService) Create(ctx context.Context, course *model.Course, actorID uint) error {
	if err := s.db.WithContext(ctx).Create(course).Error; err != nil {
		return err
	}

	s.audit.Record(&actorID, fmt.Sprintf("Course created: %s", course.Title), nil)
	return nil
}

// Update persists changes to an already-loaded course.
func (s *CourseService) Update(ctx context.Context, course *model.Course, actorID uint) error {
	if err := s.db.WithContext(ctx).Save(course).Error; err != nil {
		return err
	}

	s.audit.Record(&actorID, fmt.Sprintf("Course updated: %s", course.Title), nil)
	return nil
}

// Delete removes a course and all of its enrollments in one
// transaction. The enrollments are deleted explicitly rather than
// relying on database-level cascade, so the behavior is identical on
// every driver.
func (s *CourseService) Delete(ctx context.Context, courseID uint, actorID uint) error {
	var title string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course model.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		title = course.Title

		if err := tx.Where("course_id = ?", courseID).
			Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&course).Error
	})
	if err != nil {
		return err
	}

	s.audit.Record(&actorID, fmt.Sprintf("Course deleted: %s", title), nil)
	return nil
}

// EnrolledCounts returns enrolled-student counts for a set of course
// IDs in one query.
func (s *CourseService) EnrolledCounts(ctx context.Context, courseIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	type row struct {
		CourseID uint
		Total    int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.Enrollment{}).
		Select("course_id, count(*) as total").
		Where("course_id IN ? AND status = ?", courseIDs, model.EnrollmentEnrolled).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.CourseID] = r.Total
	}
	return counts, nil
}
