package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/handler"
	"github.com/soupclass/soup-backend/internal/middleware"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/response"
	"github.com/soupclass/soup-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Category       *handler.CategoryHandler
	MenuCourse     *handler.MenuCourseHandler
	Schedule       *handler.ScheduleHandler
	CourseSchedule *handler.CourseScheduleHandler
	Invoice        *handler.InvoiceHandler
	MyClass        *handler.MyClassHandler
	PaymentMethod  *handler.PaymentMethodHandler
	Cart           *handler.CartHandler
	Dashboard      *handler.DashboardHandler
	System         *handler.SystemHandler
	WS             *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background goroutines such as the rate limiter sweeper.
func SetupRouter(
	ctx context.Context,
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).Msg("Invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

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
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID, "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// Uploaded images are already compressed and websockets must not be buffered.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: middleware.DefaultBrotliConfig.MinLength,
		Skipper:   middleware.SkipPathPrefixes("/uploads", "/ws"),
	}))

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	router.GET("/health", handlers.System.Health)

	// Authenticated requests need a valid access token from a live session.
	requireUser := []gin.HandlerFunc{
		middleware.RequireJWT(authService),
		middleware.RequireLiveSession(authService),
	}
	withUser := func(extra ...gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, requireUser...), extra...)
	}
	can := func(perm model.Permission) []gin.HandlerFunc {
		return withUser(middleware.RequirePermission(perm))
	}

	// ─── WebSocket (public slot feed) ──────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/course-schedules/stream", handlers.WS.SlotStream)
	}

	api := router.Group("/api/v1")

	// ─── Auth (public, rate limited, never cached) ─────────────────────
	authLimiter := middleware.NewRateLimiter(ctx, 30, time.Minute)
	auth := api.Group("/auth")
	auth.Use(middleware.NoStore(), authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/resend-confirmation-email", handlers.Auth.ResendConfirmation)
		auth.GET("/confirm-email", handlers.Auth.ConfirmEmail)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/refresh-token", handlers.Auth.RefreshToken)
		auth.POST("/forgot-password", handlers.Auth.ForgotPassword)
		auth.POST("/reset-password", handlers.Auth.ResetPassword)

		auth.POST("/logout", append(withUser(), handlers.Auth.Logout)...)
		auth.GET("/me", append(withUser(), handlers.Auth.Me)...)
	}

	// ─── Catalogue ─────────────────────────────────────────────────────
	categories := api.Group("/categories")
	{
		categories.GET("", handlers.Category.ListCategories)
		categories.GET("/:id", handlers.Category.GetCategory)
		categories.POST("", append(can(model.PermissionCatalogWrite), handlers.Category.CreateCategory)...)
		categories.PUT("/:id", append(can(model.PermissionCatalogWrite), handlers.Category.UpdateCategory)...)
		categories.DELETE("/:id", append(can(model.PermissionCatalogWrite), handlers.Category.DeleteCategory)...)
	}

	courses := api.Group("/menu-courses")
	{
		courses.GET("", handlers.MenuCourse.ListMenuCourses)
		courses.GET("/:id", handlers.MenuCourse.GetMenuCourse)
		courses.GET("/:id/schedules", handlers.MenuCourse.ListMenuCourseSchedules)
		courses.POST("", append(can(model.PermissionCatalogWrite), handlers.MenuCourse.CreateMenuCourse)...)
		courses.PUT("/:id", append(can(model.PermissionCatalogWrite), handlers.MenuCourse.UpdateMenuCourse)...)
		courses.DELETE("/:id", append(can(model.PermissionCatalogWrite), handlers.MenuCourse.DeleteMenuCourse)...)
	}

	schedules := api.Group("/schedules")
	{
		schedules.GET("", handlers.Schedule.ListSchedules)
		schedules.GET("/:id", handlers.Schedule.GetSchedule)
		schedules.POST("", append(can(model.PermissionCatalogWrite), handlers.Schedule.CreateSchedule)...)
		schedules.PUT("/:id", append(can(model.PermissionCatalogWrite), handlers.Schedule.UpdateSchedule)...)
		schedules.DELETE("/:id", append(can(model.PermissionCatalogWrite), handlers.Schedule.DeleteSchedule)...)
	}

	courseSchedules := api.Group("/course-schedules")
	{
		courseSchedules.GET("/:id", handlers.CourseSchedule.GetCourseSchedule)
		courseSchedules.POST("", append(can(model.PermissionCatalogWrite), handlers.CourseSchedule.CreateCourseSchedule)...)
		courseSchedules.PUT("/:id", append(can(model.PermissionCatalogWrite), handlers.CourseSchedule.UpdateCourseSchedule)...)
		courseSchedules.DELETE("/:id", append(can(model.PermissionCatalogWrite), handlers.CourseSchedule.DeleteCourseSchedule)...)
	}

	paymentMethods := api.Group("/payment-methods")
	{
		paymentMethods.GET("", handlers.PaymentMethod.ListPaymentMethods)
		paymentMethods.GET("/:id", handlers.PaymentMethod.GetPaymentMethod)
		paymentMethods.POST("", append(can(model.PermissionPaymentMethodsWrite), handlers.PaymentMethod.CreatePaymentMethod)...)
		paymentMethods.PUT("/:id", append(can(model.PermissionPaymentMethodsWrite), handlers.PaymentMethod.UpdatePaymentMethod)...)
		paymentMethods.DELETE("/:id", append(can(model.PermissionPaymentMethodsWrite), handlers.PaymentMethod.DeletePaymentMethod)...)
	}

	// ─── Purchasing (authenticated) ────────────────────────────────────
	invoices := api.Group("/invoices")
	invoices.Use(requireUser...)
	{
		invoices.POST("", handlers.Invoice.Checkout)
		invoices.GET("", middleware.RequirePermission(model.PermissionInvoicesReadAll), handlers.Invoice.ListInvoices)
		invoices.GET("/users/:user_id", handlers.Invoice.ListUserInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
	}

	api.GET("/my-classes", append(withUser(), handlers.MyClass.ListMyClasses)...)

	cart := api.Group("/cart")
	cart.Use(requireUser...)
	{
		cart.GET("", handlers.Cart.GetCart)
		cart.DELETE("", handlers.Cart.ClearCart)
		cart.POST("/items", handlers.Cart.AddItem)
		cart.DELETE("/items/:ms_id", handlers.Cart.RemoveItem)
	}

	// ─── Users ─────────────────────────────────────────────────────────
	users := api.Group("/users")
	users.Use(requireUser...)
	{
		users.GET("/profile", handlers.User.GetProfile)
		users.GET("", middleware.RequirePermission(model.PermissionUsersRead), handlers.User.ListUsers)
		users.GET("/:id", middleware.RequirePermission(model.PermissionUsersRead), handlers.User.GetUser)
		users.POST("", middleware.RequirePermission(model.PermissionUsersWrite), handlers.User.CreateUser)
		users.PUT("/:id", middleware.RequirePermission(model.PermissionUsersWrite), handlers.User.UpdateUser)
		users.DELETE("/:id", middleware.RequirePermission(model.PermissionUsersWrite), handlers.User.DeleteUser)
	}

	// ─── Admin ─────────────────────────────────────────────────────────
	admin := api.Group("/admin")
	admin.Use(requireUser...)
	admin.Use(middleware.RequireAdmin(), middleware.RequirePermission(model.PermissionDashboardRead))
	{
		admin.GET("/dashboard", handlers.Dashboard.GetDashboardData)
		admin.GET("/system-info", handlers.System.GetSystemInfo)
	}

	return router
}
