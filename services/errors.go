package services

import "errors"

// Domain errors returned by the services. Handlers map these onto the
// HTTP taxonomy (404 / 409 / 400 / 403).
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrCourseFull         = errors.New("course is at capacity")
	ErrNotOwner           = errors.New("not the owner of this resource")
)
