package auth

import (
	"time"

	"github.com/campushub/campus-hub-api/model"
	"github.com/campushub/campus-hub-api/services"
	authutil "github.com/campushub/campus-hub-api/utils/auth"
	"github.com/campushub/campus-hub-api/utils/middleware"
	"github.com/campushub/campus-hub-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login, logout, token refresh and
// the current-user endpoint.
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *authutil.JWTManager
	audit                *services.AuditService
	validator            *validation.Validator
	bruteForceProtection *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler. bruteForceProtection may
// be nil when Redis is not configured.
func NewAuthHandler(db *gorm.DB, jwtManager *authutil.JWTManager, audit *services.AuditService, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		audit:                audit,
		validator:            validation.NewValidator(),
		bruteForceProtection: bruteForceProtection,
	}
}

// issueTokens mints an access/refresh pair for the user and sets both
// as httponly cookies. Returns the pair for the response body so
// non-browser clients can use the bearer fallback.
func (h *AuthHandler) issueTokens(c *fiber.Ctx, user *model.User) (accessToken, refreshToken string, err error) {
	accessToken, _, err = h.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}

	refreshToken, _, err = h.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}

	h.setTokenCookie(c, middleware.AccessTokenCookie, accessToken, h.jwtManager.AccessExpiry())
	h.setTokenCookie(c, middleware.RefreshTokenCookie, refreshToken, h.jwtManager.RefreshExpiry())

	return accessToken, refreshToken, nil
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, name, value string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearTokenCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
