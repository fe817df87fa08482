package database

import (
	"fmt"
	"log"

	"github.com/campushub/campus-hub-api/model"
	"github.com/campushub/campus-hub-api/utils/auth"
	"gorm.io/gorm"
)

// Seeder loads the demo dataset into an empty database
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedIfEmpty populates demo users, courses and enrollments when the
// users table has no rows. Non-empty databases are left untouched.
func (s *Seeder) SeedIfEmpty() error {
	var count int64
	if err := s.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding demo data...")

	teacher, err := s.seedUser("dr_smith", "dr.smith@campus.edu", "teacher123", model.RoleTeacher)
	if err != nil {
		return err
	}

	student1, err := s.seedUser("john_doe", "john@campus.edu", "student123", model.RoleStudent)
	if err != nil {
		return err
	}

	student2, err := s.seedUser("jane_smith", "jane@campus.edu", "student123", model.RoleStudent)
	if err != nil {
		return err
	}

	if _, err := s.seedUser("admin", "admin@campus.edu", "admin123", model.RoleAdmin); err != nil {
		return err
	}

	courses := []model.Course{
		{
			Title:        "Introduction to Go",
			Description:  "Learn Go basics and fundamental concepts.",
			InstructorID: teacher.ID,
			Credits:      3,
			Capacity:     30,
		},
		{
			Title:        "Web Development with Fiber",
			Description:  "Build modern web applications using the Fiber framework.",
			InstructorID: teacher.ID,
			Credits:      4,
			Capacity:     25,
		},
		{
			Title:        "Database Design",
			Description:  "Learn SQL, database normalization, and data modeling.",
			InstructorID: teacher.ID,
			Credits:      3,
			Capacity:     20,
		},
	}
	if err := s.db.Create(&courses).Error; err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	enrollments := []model.Enrollment{
		{StudentID: student1.ID, CourseID: courses[0].ID, Status: model.EnrollmentEnrolled},
		{StudentID: student1.ID, CourseID: courses[1].ID, Status: model.EnrollmentEnrolled},
		{StudentID: student2.ID, CourseID: courses[0].ID, Status: model.EnrollmentEnrolled},
	}
	if err := s.db.Create(&enrollments).Error; err != nil {
		return fmt.Errorf("failed to seed enrollments: %w", err)
	}

	logs := []model.AuditLog{
		{UserID: &teacher.ID, Action: "Teacher user created"},
		{UserID: &student1.ID, Action: "Student user created"},
	}
	if err := s.db.Create(&logs).Error; err != nil {
		return fmt.Errorf("failed to seed audit log: %w", err)
	}

	log.Println("Demo data seeded.")
	return nil
}

func (s *Seeder) seedUser(username, email, password, role string) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to seed user %s: %w", username, err)
	}
	return &user, nil
}
