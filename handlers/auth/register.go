package auth

import (
	"errors"
	"fmt"

	"github.com/campushub/campus-hub-api/model"
	authutil "github.com/campushub/campus-hub-api/utils/auth"
	"github.com/campushub/campus-hub-api/utils/response"
	"github.com/campushub/campus-hub-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=student teacher admin"`
}

// Register creates a user and logs them in immediately: both tokens
// are issued and set as cookies on the 201 response.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationErrors(err))
	}

	if req.Role == "" {
		req.Role = model.RoleStudent
	}

	var count int64
	if err := h.db.Model(&model.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return response.InternalServerError(c, "Failed to create user")
	}
	if count > 0 {
		return response.Conflict(c, "Username already exists")
	}

	if err := h.db.Model(&model.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return response.InternalServerError(c, "Failed to create user")
	}
	if count > 0 {
		return response.Conflict(c, "Email already exists")
	}

	hashedPassword, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	user := model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         req.Role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// The unique indexes backstop the pre-checks against races;
		// anything else is a storage failure.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Username or email already exists")
		}
		return response.InternalServerError(c, "Failed to create user")
	}

	h.audit.Record(&user.ID, fmt.Sprintf("User registered: %s", user.Username), nil)

	accessToken, refreshToken, err := h.issueTokens(c, &user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	return response.Created(c, "User registered and logged in successfully", fiber.Map{
		"user":          user.Public(),
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(h.jwtManager.AccessExpiry().Seconds()),
	})
}
