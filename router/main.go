package router

import (
	"log"
	"time"

	"github.com/campushub/campus-hub-api/config"
	"github.com/campushub/campus-hub-api/database"
	"github.com/campushub/campus-hub-api/handlers"
	auth_handlers "github.com/campushub/campus-hub-api/handlers/auth"
	course_handlers "github.com/campushub/campus-hub-api/handlers/course"
	enrollment_handlers "github.com/campushub/campus-hub-api/handlers/enrollment"
	user_handlers "github.com/campushub/campus-hub-api/handlers/user"
	"github.com/campushub/campus-hub-api/model"
	"github.com/campushub/campus-hub-api/services"
	"github.com/campushub/campus-hub-api/services/spaces"
	"github.com/campushub/campus-hub-api/utils/auth"
	"github.com/campushub/campus-hub-api/utils/cache"
	"github.com/campushub/campus-hub-api/utils/middleware"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires middleware, services and the route table.
func SetupRoutes(app *fiber.App, store database.Storage) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "campus-hub-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        getEnv.JWT_SECRET,
		Expiry:        24 * time.Hour,      // Access token expires in 24 hours
		RefreshExpiry: 30 * 24 * time.Hour, // Refresh token expires in 30 days
		Issuer:        jwtIssuer,
	})

	db := store.GetDB()

	// Redis-backed login throttling; optional.
	var bruteForceProtection *middleware.BruteForceProtection
	if getEnv.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: failed to connect to Redis: %v. Login throttling disabled.", err)
		} else {
			bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
		}
	}

	// Object storage for profile pictures; optional.
	var pictureStore *spaces.Client
	spacesConfig := spaces.Config{
		AccessKey: getEnv.SPACES_ACCESS_KEY,
		SecretKey: getEnv.SPACES_SECRET_KEY,
		Bucket:    getEnv.SPACES_BUCKET,
		Region:    getEnv.SPACES_REGION,
		Endpoint:  getEnv.SPACES_ENDPOINT,
	}
	if spacesConfig.Configured() {
		client, err := spaces.NewClient(spacesConfig)
		if err != nil {
			log.Printf("Warning: failed to set up object storage: %v. Inline pictures stored verbatim.", err)
		} else {
			pictureStore = client
		}
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	auditService := services.NewAuditService(db)
	courseService := services.NewCourseService(db, auditService)
	enrollmentService := services.NewEnrollmentService(db, auditService)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, auditService, bruteForceProtection)
	courseHandler := course_handlers.NewCourseHandler(db, courseService)
	enrollmentHandler := enrollment_handlers.NewEnrollmentHandler(enrollmentService, courseService)
	userHandler := user_handlers.NewUserHandler(db, auditService, pictureStore)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	// Auth routes
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckLockout(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Course routes
	courses := app.Group("/courses")
	courses.Get("/", courseHandler.List)
	courses.Get("/:id", courseHandler.Get)
	courses.Post("/", authMiddleware.RequireRole(model.RoleTeacher, model.RoleAdmin), courseHandler.Create)
	courses.Put("/:id", authMiddleware.RequireRole(model.RoleTeacher), courseHandler.Update)
	courses.Delete("/:id", authMiddleware.RequireRole(model.RoleTeacher), courseHandler.Delete)

	// Enrollment routes
	enrollments := app.Group("/enrollments", authMiddleware.Required())
	enrollments.Post("/", enrollmentHandler.Enroll)
	enrollments.Get("/my-enrollments", enrollmentHandler.MyEnrollments)
	enrollments.Delete("/:id", enrollmentHandler.Unenroll)

	// User routes
	users := app.Group("/users")
	users.Get("/", authMiddleware.RequireRole(model.RoleAdmin), userHandler.List)
	users.Get("/profile/:id", authMiddleware.Required(), userHandler.GetProfile)
	users.Put("/profile/:id", authMiddleware.Required(), userHandler.UpdateProfile)
	users.Post("/profile/:id/picture", authMiddleware.Required(), userHandler.SetPicture)
	users.Get("/:id", authMiddleware.Required(), userHandler.Get)
}
