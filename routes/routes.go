package routes

import (
	"net/http"
	"time"

	"salonbook/handlers"
	"salonbook/middleware"
	"salonbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and password reset.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register/initiate", hb.RegisterInitiateHandler)
		api.POST("/register/verify", hb.RegisterVerifyHandler)
		api.POST("/register/finalize", hb.RegisterFinalizeHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/login/provider", hb.ProviderLoginHandler)
		api.POST("/password-reset", hb.PasswordResetHandler)

		api.POST("/logout", middleware.UserAuthMiddleware(), hb.LogoutHandler)
	}
}

// RegisterBookingRoutes registers the catalogue, slot and booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		// Public: browsing services and availability needs no account.
		api.GET("/services", hb.ServicesHandler)
		api.GET("/slots", hb.DaySlotsHandler)

		// Booking and self-service management require a session.
		protected := api.Group("")
		protected.Use(middleware.UserAuthMiddleware())
		protected.POST("", hb.CreateBookingHandler)
		protected.GET("/mine", hb.MyAppointmentsHandler)
		protected.DELETE("/:id", hb.CancelBookingHandler)
	}
}

// RegisterAdminRoutes registers the dashboard endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", middleware.DeviceAuthMiddleware(), hb.AdminLoginHandler)

		protected := api.Group("")
		protected.Use(middleware.AdminAuthMiddleware())
		protected.GET("/appointments", hb.AdminListAppointmentsHandler)
		protected.DELETE("/appointments/:id", hb.AdminCancelAppointmentHandler)
	}
}

// RegisterContactRoute registers the contact-form relay.
func RegisterContactRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/contact", hb.ContactHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterContactRoute(r, hb)
	RegisterHealthRoute(r)
}
