package user

import (
	"errors"
	"strconv"

	"github.com/campushub/campus-hub-api/model"
	"github.com/campushub/campus-hub-api/services"
	"github.com/campushub/campus-hub-api/services/spaces"
	"github.com/campushub/campus-hub-api/utils/middleware"
	"github.com/campushub/campus-hub-api/utils/response"
	"github.com/campushub/campus-hub-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserHandler handles user listing, lookup and profile management
type UserHandler struct {
	db        *gorm.DB
	audit     *services.AuditService
	pictures  *spaces.Client
	validator *validation.Validator
}

// NewUserHandler creates a new user handler. pictures may be nil when
// object storage is not configured; inline uploads are then stored as
// the reference string itself.
func NewUserHandler(db *gorm.DB, audit *services.AuditService, pictures *spaces.Client) *UserHandler {
	return &UserHandler{
		db:        db,
		audit:     audit,
		pictures:  pictures,
		validator: validation.NewValidator(),
	}
}

// List handles GET /users (admin only)
func (h *UserHandler) List(c *fiber.Ctx) error {
	var users []model.User
	if err := h.db.Order("id").Find(&users).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	publics := make([]model.PublicUser, len(users))
	for i := range users {
		publics[i] = users[i].Public()
	}

	return response.Success(c, fiber.Map{"users": publics})
}

// Get handles GET /users/:id — public fields only.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var user model.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	return response.Success(c, user.Public())
}

// loadForProfileAccess loads the target user and applies the
// owner-or-admin rule. The load happens first so a missing user is
// 404 before access is evaluated.
func (h *UserHandler) loadForProfileAccess(c *fiber.Ctx) (*model.User, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, response.BadRequest(c, "Invalid user id")
	}

	var user model.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound(c, "User not found")
		}
		return nil, response.InternalServerError(c, "Failed to fetch user")
	}

	callerID, _ := middleware.GetUserID(c)
	callerRole, _ := middleware.GetUserRole(c)
	if callerID != user.ID && callerRole != model.RoleAdmin {
		return nil, response.Forbidden(c, "")
	}

	return &user, nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}
