package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/course-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/course-booking-backend/internal/contact"
	contactHttp "github.com/nekogravitycat/course-booking-backend/internal/contact/http"
	"github.com/nekogravitycat/course-booking-backend/internal/course"
	courseHttp "github.com/nekogravitycat/course-booking-backend/internal/course/http"
	"github.com/nekogravitycat/course-booking-backend/internal/dashboard"
	dashboardHttp "github.com/nekogravitycat/course-booking-backend/internal/dashboard/http"
	"github.com/nekogravitycat/course-booking-backend/internal/lesson"
	lessonHttp "github.com/nekogravitycat/course-booking-backend/internal/lesson/http"
	"github.com/nekogravitycat/course-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/course-booking-backend/internal/user/http"
)

// Config carries everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Logger       *zap.Logger

	UserService      user.Service
	CourseService    course.Service
	BookingService   booking.Service
	DashboardService dashboard.Service
	ContactService   contact.Service
	LessonService    lesson.Service
	JWTManager       *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - RequestLogger: one zap line per request.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestLogger(cfg.Logger.Named("http")), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Frontend dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// identityMiddleware: Resolves the token subject into an identity for the domain services.
	identityMiddleware := LoadIdentity(cfg.UserService)
	// adminMiddleware: Further checks if the authenticated user is an admin.
	adminMiddleware := RequireAdmin(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	courseHandler := courseHttp.NewHandler(cfg.CourseService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	dashboardHandler := dashboardHttp.NewHandler(cfg.DashboardService)
	contactHandler := contactHttp.NewHandler(cfg.ContactService)
	lessonHandler := lessonHttp.NewHandler(cfg.LessonService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		courseHttp.RegisterRoutes(v1, courseHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, identityMiddleware)
		dashboardHttp.RegisterRoutes(v1, dashboardHandler, authMiddleware, identityMiddleware)
		contactHttp.RegisterRoutes(v1, contactHandler, authMiddleware, adminMiddleware)
		lessonHttp.RegisterRoutes(v1, lessonHandler, authMiddleware, adminMiddleware)
	}

	return r
}
