package enrollment

import (
	"errors"
	"strconv"

	"github.com/campushub/campus-hub-api/model"
	"github.com/campushub/campus-hub-api/services"
	"github.com/campushub/campus-hub-api/utils/middleware"
	"github.com/campushub/campus-hub-api/utils/response"
	"github.com/campushub/campus-hub-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// EnrollmentHandler handles enrollment requests
type EnrollmentHandler struct {
	enrollments *services.EnrollmentService
	courses     *services.CourseService
	validator   *validation.Validator
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(enrollments *services.EnrollmentService, courses *services.CourseService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollments: enrollments,
		courses:     courses,
		validator:   validation.NewValidator(),
	}
}

// EnrollRequest represents the request body for enrolling
type EnrollRequest struct {
	CourseID uint `json:"course_id" validate:"required,min=1"`
}

// Enroll handles POST /enrollments: the caller enrolls themselves.
func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationErrors(err))
	}

	enrollment, err := h.enrollments.Enroll(c.Context(), userID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			return response.NotFound(c, "Course not found")
		case errors.Is(err, services.ErrAlreadyEnrolled):
			return response.Conflict(c, "Already enrolled in this course")
		case errors.Is(err, services.ErrCourseFull):
			return response.CapacityExceeded(c, "Course is at capacity")
		default:
			return response.InternalServerError(c, "Failed to enroll")
		}
	}

	return response.Created(c, "Enrolled successfully", h.view(c, enrollment))
}

// MyEnrollments handles GET /enrollments/my-enrollments
func (h *EnrollmentHandler) MyEnrollments(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	enrollments, err := h.enrollments.ListByStudent(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch enrollments")
	}

	views := make([]model.EnrollmentView, len(enrollments))
	for i := range enrollments {
		views[i] = h.view(c, &enrollments[i])
	}

	return response.Success(c, views)
}

// Unenroll handles DELETE /enrollments/:id. Only the enrolled student
// may remove their own enrollment.
func (h *EnrollmentHandler) Unenroll(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid enrollment id")
	}

	if err := h.enrollments.Unenroll(c.Context(), uint(id), userID); err != nil {
		switch {
		case errors.Is(err, services.ErrEnrollmentNotFound):
			return response.NotFound(c, "Enrollment not found")
		case errors.Is(err, services.ErrNotOwner):
			return response.Forbidden(c, "Not authorized")
		default:
			return response.InternalServerError(c, "Failed to unenroll")
		}
	}

	return response.SuccessWithMessage(c, "Unenrolled successfully", nil)
}

func (h *EnrollmentHandler) view(c *fiber.Ctx, enrollment *model.Enrollment) model.EnrollmentView {
	var courseView *model.CourseView

	course, err := h.courses.Get(c.Context(), enrollment.CourseID)
	if err == nil {
		counts, cerr := h.courses.EnrolledCounts(c.Context(), []uint{course.ID})
		if cerr != nil {
			counts = map[uint]int64{}
		}
		v := course.View(course.Instructor.Username, counts[course.ID])
		courseView = &v
	}

	return enrollment.View(courseView)
}
