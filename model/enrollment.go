package model

import (
	"time"
)

// Enrollment joins one student to one course. The (student, course)
// pair is unique regardless of status.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_student_course" json:"student_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_student_course" json:"course_id"`
	Status    string    `gorm:"type:varchar(20);default:'pending';not null" json:"status"` // pending, enrolled

	// Relationships
	Student User   `gorm:"foreignKey:StudentID" json:"-"`
	Course  Course `gorm:"foreignKey:CourseID" json:"-"`
}

// Enrollment statuses. The enroll flow writes enrolled directly;
// pending is reserved for approval-style flows.
const (
	EnrollmentPending  = "pending"
	EnrollmentEnrolled = "enrolled"
)

// EnrollmentView is the serialized form of an enrollment with its
// course embedded.
type EnrollmentView struct {
	ID        uint        `json:"id"`
	StudentID uint        `json:"student_id"`
	CourseID  uint        `json:"course_id"`
	Course    *CourseView `json:"course,omitempty"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// View builds the serialized form with an optional embedded course.
func (e *Enrollment) View(course *CourseView) EnrollmentView {
	return EnrollmentView{
		ID:        e.ID,
		StudentID: e.StudentID,
		CourseID:  e.CourseID,
		Course:    course,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
