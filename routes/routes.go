package routes

import (
	"net/http"
	"time"

	"visioncare/handlers"
	"visioncare/middleware"
	userService "visioncare/services/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RegisterAuthRoutes registers sign-up and sign-in endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, sessions *redis.Client, users userService.UserService) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		api.GET("/me", middleware.AuthMiddleware(sessions, users), hb.MeHandler)
		api.POST("/logout", middleware.AuthMiddleware(sessions, users), hb.LogoutHandler)
	}
}

// RegisterAppointmentRoutes registers the scheduling endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle, sessions *redis.Client, users userService.UserService) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.AuthMiddleware(sessions, users))
		api.GET("", hb.ListAppointmentsHandler)
		api.GET("/availability", hb.AvailabilityHandler)
		api.POST("", hb.ScheduleAppointmentHandler)
		api.DELETE("/:id", hb.CancelAppointmentHandler)
	}
}

// RegisterPatientRoutes registers the patient registry endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle, sessions *redis.Client, users userService.UserService) {
	api := r.Group("/api/patients")
	{
		api.Use(middleware.AuthMiddleware(sessions, users))
		api.GET("", hb.ListPatientsHandler)
		api.GET("/search", hb.SearchPatientsHandler)
		api.POST("", hb.CreatePatientHandler)
		api.PATCH("/:id", hb.UpdatePatientHandler)
		api.DELETE("/:id", hb.DeletePatientHandler)
	}
}

// RegisterExamRoutes registers the exam endpoints.
func RegisterExamRoutes(r *gin.Engine, hb *handlers.HandlerBundle, sessions *redis.Client, users userService.UserService) {
	api := r.Group("/api/exams")
	{
		api.Use(middleware.AuthMiddleware(sessions, users))
		api.GET("", hb.ListExamsHandler)
		api.POST("", hb.CreateExamHandler)
		api.PATCH("/:id", hb.UpdateExamHandler)
		api.DELETE("/:id", hb.DeleteExamHandler)
		api.GET("/:id/file-url", hb.ExamFileURLHandler)
	}
}

// RegisterReferralRoutes registers the referral endpoints.
func RegisterReferralRoutes(r *gin.Engine, hb *handlers.HandlerBundle, sessions *redis.Client, users userService.UserService) {
	api := r.Group("/api/referrals")
	{
		api.Use(middleware.AuthMiddleware(sessions, users))
		api.GET("", hb.ListReferralsHandler)
		api.POST("", hb.CreateReferralHandler)
		api.PATCH("/:id", hb.UpdateReferralHandler)
		api.DELETE("/:id", hb.DeleteReferralHandler)
	}
}

// RegisterSpecialistRoutes registers the specialist listing endpoint.
func RegisterSpecialistRoutes(r *gin.Engine, hb *handlers.HandlerBundle, sessions *redis.Client, users userService.UserService) {
	api := r.Group("/api/specialists")
	{
		api.Use(middleware.AuthMiddleware(sessions, users))
		api.GET("", hb.ListSpecialistsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, sessions *redis.Client, users userService.UserService) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AuthMiddleware(sessions, users), middleware.AdminOnly())
		adminGroup.GET("/users", hb.GetAllUsersHandler)
		adminGroup.PUT("/users/:id/role", hb.UpdateUserRoleHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, sessions *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb, sessions, hb.Users)
	RegisterAppointmentRoutes(r, hb, sessions, hb.Users)
	RegisterPatientRoutes(r, hb, sessions, hb.Users)
	RegisterExamRoutes(r, hb, sessions, hb.Users)
	RegisterReferralRoutes(r, hb, sessions, hb.Users)
	RegisterSpecialistRoutes(r, hb, sessions, hb.Users)
	RegisterAdminRoutes(r, hb, sessions, hb.Users)
	RegisterHealthRoute(r)
}
