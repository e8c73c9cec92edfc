package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nexlearn/nexlearn-backend/internal/config"
	"github.com/nexlearn/nexlearn-backend/internal/handler"
	"github.com/nexlearn/nexlearn-backend/internal/middleware"
	"github.com/nexlearn/nexlearn-backend/internal/response"
	"github.com/nexlearn/nexlearn-backend/internal/service"
	"github.com/nexlearn/nexlearn-backend/internal/validator"
	"github.com/rs/zerolog"
)

// courseListMaxAge is the browser cache lifetime of GET /api/courses.
const courseListMaxAge = 30 * time.Second

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Course  *handler.CourseHandler
	Comment *handler.CommentHandler
	User    *handler.UserHandler
	Contact *handler.ContactHandler
	System  *handler.SystemHandler
	// WS is optional; without it the live comment feed is not mounted.
	WS *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// authLimiter may be nil to disable rate limiting of /api/auth.
func SetupRouter(
	authService *service.AuthService,
	roles middleware.RoleResolver,
	handlers *Handlers,
	authLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	validator.Setup()

	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", middleware.HeaderAuthToken, response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response carries one.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.System.Health)
	router.GET("/health/ready", handlers.System.Ready)

	requireAuth := middleware.RequireAuth(authService)
	api := router.Group("/api")

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := api.Group("/auth")
	if authLimiter != nil {
		auth.Use(authLimiter.Middleware())
	}
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	// ─── 2. Courses (public reads, owner writes) ───────────────────────
	courses := api.Group("/courses")
	{
		courses.GET("", middleware.CacheControl(courseListMaxAge), handlers.Course.List)
		courses.GET("/:id", handlers.Course.GetByID)
		courses.POST("", requireAuth, handlers.Course.Create)
		courses.PUT("/:id", requireAuth, handlers.Course.Update)
		courses.DELETE("/:id", requireAuth, handlers.Course.Delete)
	}

	// ─── 3. Comments ───────────────────────────────────────────────────
	comments := api.Group("/comments")
	{
		comments.GET("/:courseId", handlers.Comment.ListByCourse)
		comments.POST("/:courseId", requireAuth, handlers.Comment.Create)
		comments.DELETE("/:id", requireAuth, handlers.Comment.Delete)
	}

	// ─── 4. Users (JWT; listing needs a fresh admin role) ──────────────
	users := api.Group("/users")
	users.Use(requireAuth, middleware.NoStore())
	{
		users.POST("/enroll/:courseId", handlers.User.Enroll)
		users.GET("/my-courses", handlers.User.MyCourses)
		users.GET("/check-enroll/:courseId", handlers.User.CheckEnroll)
		users.PUT("/profile", handlers.User.UpdateProfile)
		users.GET("/me", handlers.User.Me)
		users.GET("", middleware.RequireAdmin(roles, log), handlers.User.List)
	}

	// ─── 5. Contact ────────────────────────────────────────────────────
	api.POST("/contact", handlers.Contact.Submit)

	// ─── 6. WebSocket (public live comment feed) ───────────────────────
	if handlers.WS != nil {
		router.GET("/ws/comments/:courseId", handlers.WS.CommentStream)
	}

	return router
}
