package model

import (
	"time"
)

// Course represents an offering owned by one instructor
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Title        string    `gorm:"size:150;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	InstructorID uint      `gorm:"not null;index" json:"instructor_id"`
	Credits      int       `gorm:"default:3" json:"credits"`
	Capacity     int       `gorm:"default:30" json:"capacity"`

	// Relationships
	Instructor  User         `gorm:"foreignKey:InstructorID" json:"-"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// Defaults applied when a create request omits the fields.
const (
	DefaultCredits  = 3
	DefaultCapacity = 30
)

// CourseView is the serialized form of a course, including the
// instructor's username and the live enrolled count.
type CourseView struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	InstructorID  uint      `json:"instructor_id"`
	Instructor    string    `json:"instructor,omitempty"`
	Credits       int       `json:"credits"`
	Capacity      int       `json:"capacity"`
	EnrolledCount int64     `json:"enrolled_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// View builds the serialized form. enrolledCount is supplied by the
// caller so listing endpoints can batch the count query.
func (c *Course) View(instructorName string, enrolledCount int64) CourseView {
	return CourseView{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		InstructorID:  c.InstructorID,
		Instructor:    instructorName,
		Credits:       c.Credits,
		Capacity:      c.Capacity,
		EnrolledCount: enrolledCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
