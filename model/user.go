package model

import (
	"time"
)

// User represents a registered user in the system
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         string    `gorm:"type:varchar(20);default:'student';not null" json:"role"` // student, teacher, admin

	// Profile fields (optional, mutated by owner or admin)
	FullName          string `gorm:"size:100" json:"full_name,omitempty"`
	Phone             string `gorm:"size:20" json:"phone,omitempty"`
	Bio               string `gorm:"type:text" json:"bio,omitempty"`
	ProfilePictureURL string `gorm:"size:500" json:"profile_picture_url,omitempty"`
	Address           string `gorm:"size:255" json:"address,omitempty"`
	City              string `gorm:"size:100" json:"city,omitempty"`
	State             string `gorm:"size:100" json:"state,omitempty"`
	Country           string `gorm:"size:100" json:"country,omitempty"`

	// Relationships
	CoursesTaught []Course     `gorm:"foreignKey:InstructorID;constraint:OnDelete:CASCADE" json:"-"`
	Enrollments   []Enrollment `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	AuditLogs     []AuditLog   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

// User roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// PublicUser is the representation of a user safe to return to any
// authenticated caller: identity fields only, no profile details.
type PublicUser struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public strips profile fields from a user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
