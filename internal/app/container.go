package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/course-booking-backend/internal/api"
	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/booking"
	"github.com/nekogravitycat/course-booking-backend/internal/contact"
	"github.com/nekogravitycat/course-booking-backend/internal/course"
	"github.com/nekogravitycat/course-booking-backend/internal/dashboard"
	"github.com/nekogravitycat/course-booking-backend/internal/lesson"
	"github.com/nekogravitycat/course-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction         bool
	ProdOrigins          []string
	DBPool               *pgxpool.Pool
	JWTSecret            string
	JWTTTL               time.Duration
	BcryptCost           int
	DashboardRecentLimit int
	Logger               *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	UserService user.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, cfg.Logger)

	// Course Module
	courseRepo := course.NewPgxRepository(cfg.DBPool)
	courseService := course.NewService(courseRepo, cfg.Logger)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, courseService, cfg.Logger)

	// Dashboard Module
	dashboardService := dashboard.NewService(bookingService, courseService, cfg.DashboardRecentLimit)

	// Contact Module
	contactRepo := contact.NewPgxRepository(cfg.DBPool)
	contactService := contact.NewService(contactRepo, cfg.Logger)

	// Lesson Module
	lessonRepo := lesson.NewPgxRepository(cfg.DBPool)
	lessonService := lesson.NewService(lessonRepo)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:     cfg.IsProduction,
		ProdOrigins:      cfg.ProdOrigins,
		Logger:           cfg.Logger,
		UserService:      userService,
		CourseService:    courseService,
		BookingService:   bookingService,
		DashboardService: dashboardService,
		ContactService:   contactService,
		LessonService:    lessonService,
		JWTManager:       jwtManager,
	})

	return &Container{
		Router:      router,
		JWTManager:  jwtManager,
		UserService: userService,
	}
}
