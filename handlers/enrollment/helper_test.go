package enrollment_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campushub/campus-hub-api/database"
	"github.com/campushub/campus-hub-api/model"
	"github.com/campushub/campus-hub-api/router"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SPACES_ACCESS_KEY", "")
	t.Setenv("SPACES_SECRET_KEY", "")
	t.Setenv("SPACES_BUCKET", "")

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Enrollment{},
		&model.AuditLog{},
	))

	app := fiber.New()
	router.SetupRoutes(app, database.NewGORMStore(db))
	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed apiResponse
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func register(t *testing.T, app *fiber.App, username, role string) (token string, userID uint) {
	t.Helper()

	body := fiber.Map{
		"username": username,
		"email":    username + "@campus.edu",
		"password": "pw123",
	}
	if role != "" {
		body["role"] = role
	}

	resp, parsed := doRequest(t, app, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var data struct {
		User        model.PublicUser `json:"user"`
		AccessToken string           `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &data))
	return data.AccessToken, data.User.ID
}

func createCourse(t *testing.T, app *fiber.App, token, title string, capacity int) model.CourseView {
	t.Helper()

	resp, parsed := doRequest(t, app, http.MethodPost, "/courses", token, fiber.Map{
		"title":    title,
		"capacity": capacity,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var view model.CourseView
	require.NoError(t, json.Unmarshal(parsed.Data, &view))
	return view
}

func enroll(t *testing.T, app *fiber.App, token string, courseID uint) (*http.Response, apiResponse) {
	t.Helper()
	return doRequest(t, app, http.MethodPost, "/enrollments", token, fiber.Map{
		"course_id": courseID,
	})
}
