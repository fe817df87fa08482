package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campushub/campus-hub-api/utils/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT() *auth.JWTManager {
	return auth.NewJWTManager(auth.JWTConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "campus-hub-api",
	})
}

func newTestApp(jwtManager *auth.JWTManager) *fiber.App {
	app := fiber.New()
	m := NewAuthMiddleware(jwtManager)

	app.Get("/protected", m.Required(), func(c *fiber.Ctx) error {
		id, _ := GetUserID(c)
		username, _ := GetUsername(c)
		role, _ := GetUserRole(c)
		return c.JSON(fiber.Map{"user_id": id, "username": username, "role": role})
	})
	app.Get("/admin-only", m.RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app
}

func TestRequiredWithBearerHeader(t *testing.T) {
	jwtManager := newTestJWT()
	app := newTestApp(jwtManager)

	token, _, err := jwtManager.GenerateAccessToken(7, "alice", "student")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequiredWithCookie(t *testing.T) {
	jwtManager := newTestJWT()
	app := newTestApp(jwtManager)

	token, _, err := jwtManager.GenerateAccessToken(7, "alice", "student")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequiredWithoutToken(t *testing.T) {
	app := newTestApp(newTestJWT())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequiredWithGarbageToken(t *testing.T) {
	app := newTestApp(newTestJWT())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// A refresh token is never accepted as request authentication.
func TestRequiredRejectsRefreshToken(t *testing.T) {
	jwtManager := newTestJWT()
	app := newTestApp(jwtManager)

	token, _, err := jwtManager.GenerateRefreshToken(7)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequiredExpiredToken(t *testing.T) {
	expired := auth.NewJWTManager(auth.JWTConfig{
		Secret:        "test-secret",
		Expiry:        -time.Minute,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "campus-hub-api",
	})
	app := newTestApp(expired)

	token, _, err := expired.GenerateAccessToken(7, "alice", "student")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	jwtManager := newTestJWT()
	app := newTestApp(jwtManager)

	studentToken, _, err := jwtManager.GenerateAccessToken(7, "alice", "student")
	require.NoError(t, err)
	adminToken, _, err := jwtManager.GenerateAccessToken(1, "admin", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExtractTokenPrefersCookie(t *testing.T) {
	app := fiber.New()
	app.Get("/echo", func(c *fiber.Ctx) error {
		return c.SendString(ExtractToken(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body := make([]byte, 32)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "from-cookie", string(body[:n]))
}
