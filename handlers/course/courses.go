package course

import (
	"errors"
	"strconv"

	"github.com/campushub/campus-hub-api/model"
	"github.com/campushub/campus-hub-api/services"
	"github.com/campushub/campus-hub-api/utils/middleware"
	"github.com/campushub/campus-hub-api/utils/response"
	"github.com/campushub/campus-hub-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CourseHandler handles course CRUD requests
type CourseHandler struct {
	db        *gorm.DB
	courses   *services.CourseService
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB, courses *services.CourseService) *CourseHandler {
	return &CourseHandler{
		db:        db,
		courses:   courses,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=150"`
	Description  string `json:"description" validate:"omitempty"`
	InstructorID uint   `json:"instructor_id" validate:"omitempty"`
	Credits      *int   `json:"credits" validate:"omitempty,gte=0"`
	Capacity     *int   `json:"capacity" validate:"omitempty,gte=0"`
}

// UpdateCourseRequest represents the request body for updating a
// course. Pointer fields distinguish absent keys from zero values.
type UpdateCourseRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description" validate:"omitempty"`
	Credits     *int    `json:"credits" validate:"omitempty,gte=0"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=0"`
}

// List handles GET /courses (public)
func (h *CourseHandler) List(c *fiber.Ctx) error {
	courses, err := h.courses.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	ids := make([]uint, len(courses))
	for i, course := range courses {
		ids[i] = course.ID
	}

	counts, err := h.courses.EnrolledCounts(c.Context(), ids)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	views := make([]model.CourseView, len(courses))
	for i, course := range courses {
		views[i] = course.View(course.Instructor.Username, counts[course.ID])
	}

	return response.Success(c, views)
}

// Get handles GET /courses/:id (public)
func (h *CourseHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	course, err := h.courses.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, h.view(c, course))
}

// Create handles POST /courses (teacher or admin)
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationErrors(err))
	}

	// The instructor defaults to the caller. When supplied explicitly
	// it must reference a user allowed to teach.
	instructorID := req.InstructorID
	if instructorID == 0 {
		instructorID = userID
	}

	var instructor model.User
	if err := h.db.First(&instructor, instructorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.BadRequest(c, "Instructor does not exist")
		}
		return response.InternalServerError(c, "Failed to create course")
	}
	if instructor.Role != model.RoleTeacher && instructor.Role != model.RoleAdmin {
		return response.BadRequest(c, "Instructor must be a teacher or admin")
	}

	course := model.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: instructorID,
		Credits:      model.DefaultCredits,
		Capacity:     model.DefaultCapacity,
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Capacity != nil {
		course.Capacity = *req.Capacity
	}

	if err := h.courses.Create(c.Context(), &course, userID); err != nil {
		return response.InternalServerError(c, "Failed to create course")
	}

	course.Instructor = instructor
	return response.Created(c, "Course created", h.view(c, &course))
}

// Update handles PUT /courses/:id (owning teacher only)
func (h *CourseHandler) Update(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	// Load before the ownership check: a missing course is 404, a
	// foreign course is 403.
	course, err := h.courses.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if course.InstructorID != userID {
		return response.Forbidden(c, "Not authorized to update this course")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationErrors(err))
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Capacity != nil {
		course.Capacity = *req.Capacity
	}

	if err := h.courses.Update(c.Context(), course, userID); err != nil {
		return response.InternalServerError(c, "Failed to update course")
	}

	return response.SuccessWithMessage(c, "Course updated", h.view(c, course))
}

// Delete handles DELETE /courses/:id (owning teacher only). Deleting
// a course removes its enrollments with it.
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	course, err := h.courses.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if course.InstructorID != userID {
		return response.Forbidden(c, "Not authorized to delete this course")
	}

	if err := h.courses.Delete(c.Context(), id, userID); err != nil {
		return response.InternalServerError(c, "Failed to delete course")
	}

	return response.SuccessWithMessage(c, "Course deleted", nil)
}

func (h *CourseHandler) view(c *fiber.Ctx, course *model.Course) model.CourseView {
	counts, err := h.courses.EnrolledCounts(c.Context(), []uint{course.ID})
	if err != nil {
		counts = map[uint]int64{}
	}
	return course.View(course.Instructor.Username, counts[course.ID])
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}
