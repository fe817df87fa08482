package auth

import (
	"errors"
	"fmt"

	"github.com/campushub/campus-hub-api/model"
	authutil "github.com/campushub/campus-hub-api/utils/auth"
	"github.com/campushub/campus-hub-api/utils/middleware"
	"github.com/campushub/campus-hub-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RefreshRequest represents a token refresh request. The token may
// also arrive via the refresh_token cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh redeems a refresh token for a new token pair. A refresh
// token carries only the user id; the role and username are resolved
// from storage here, never trusted from the token, so a role change
// takes effect no later than the next refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	_ = c.BodyParser(&req)

	tokenString := req.RefreshToken
	if tokenString == "" {
		tokenString = c.Cookies(middleware.RefreshTokenCookie)
	}
	if tokenString == "" {
		return response.BadRequest(c, "Refresh token is required")
	}

	claims, err := h.jwtManager.ValidateToken(tokenString)
	if err != nil {
		return response.Unauthorized(c, "Invalid or expired refresh token")
	}

	if claims.TokenType != authutil.TokenTypeRefresh {
		return response.Unauthorized(c, "Invalid token type")
	}

	var user model.User
	if err := h.db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Unauthorized(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to refresh token")
	}

	accessToken, refreshToken, err := h.issueTokens(c, &user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	return response.Success(c, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(h.jwtManager.AccessExpiry().Seconds()),
	})
}

// Logout clears the token cookies. Tokens are not tracked server-side,
// so logout is purely a client-side invalidation.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	username, _ := middleware.GetUsername(c)

	h.audit.Record(&userID, fmt.Sprintf("User logged out: %s", username), nil)

	h.clearTokenCookie(c, middleware.AccessTokenCookie)
	h.clearTokenCookie(c, middleware.RefreshTokenCookie)

	return response.SuccessWithMessage(c, "Logout successful", nil)
}

// Me returns the caller's own record, re-read from storage.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load user")
	}

	return response.Success(c, user.Public())
}
