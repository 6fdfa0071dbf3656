package routes

import (
	"time"

	"facestudio/config"
	"facestudio/handlers"
	"facestudio/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers user endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", hb.Auth.Register)
		auth.POST("/login", hb.Auth.Login)
		auth.GET("/me", middleware.JWTAuthMiddleware(), hb.Auth.Me)
	}
}

// RegisterContentRoutes registers the public treatment, blog and education pages.
func RegisterContentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/treatments", hb.Content.ListTreatments)
	api.GET("/treatments/:slug", hb.Content.GetTreatment)
	api.GET("/articles/:kind", hb.Content.ListArticles)
	api.GET("/articles/:kind/:slug", hb.Content.GetArticle)
}

// RegisterFormRoutes registers the contact and gift voucher forms behind the per-IP form limiter.
func RegisterFormRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, perMinute int) {
	forms := api.Group("")
	{
		forms.Use(middleware.FormRateLimitMiddleware(perMinute))
		forms.POST("/contact", hb.Inquiry.SubmitContact)
		forms.POST("/vouchers", hb.Inquiry.OrderVoucher)
	}
}

// RegisterAdminRoutes sets up endpoints for staff operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	admin := api.Group("/admin")
	{
		admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminMiddleware())

		admin.GET("/treatments", hb.Content.AdminListTreatments)
		admin.POST("/treatments", hb.Content.CreateTreatment)
		admin.GET("/treatments/:id", hb.Content.AdminGetTreatment)
		admin.PUT("/treatments/:id", hb.Content.UpdateTreatment)
		admin.DELETE("/treatments/:id", hb.Content.DeleteTreatment)
		admin.POST("/treatments/:id/thumbnail", hb.Content.UploadTreatmentThumbnail)

		admin.GET("/articles/:kind", hb.Content.AdminListArticles)
		admin.POST("/articles/:kind", hb.Content.CreateArticle)
		admin.GET("/articles/:kind/:id", hb.Content.AdminGetArticle)
		admin.PUT("/articles/:kind/:id", hb.Content.UpdateArticle)
		admin.DELETE("/articles/:kind/:id", hb.Content.DeleteArticle)
		admin.POST("/articles/:kind/:id/thumbnail", hb.Content.UploadArticleThumbnail)

		admin.POST("/uploads", hb.Content.UploadEditorImage)

		admin.GET("/reservations", hb.Booking.ListReservations)
		admin.GET("/reservations/:id", hb.Booking.GetReservation)
		admin.PATCH("/reservations/:id/status", hb.Booking.UpdateStatus)
		admin.GET("/reservations/:id/activity", hb.Booking.ReservationActivity)

		admin.GET("/contacts", hb.Inquiry.ListContacts)
		admin.POST("/contacts/:id/read", hb.Inquiry.MarkContactRead)
		admin.GET("/vouchers", hb.Inquiry.ListVouchers)
		admin.GET("/emails", hb.Inquiry.ListEmails)

		admin.GET("/users", hb.Admin.GetAllUsersHandler)
		admin.PATCH("/users/:id/role", hb.Admin.SetRoleHandler)
	}
}

// RegisterHealthRoutes registers the liveness and readiness probes.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health/live", hb.Health.Live)
	r.GET("/health/ready", hb.Health.Ready)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Accept-Language", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !allowsAnyOrigin(),
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoutes(r, hb)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin), middleware.LanguageMiddleware())

	RegisterAuthRoutes(api, hb)
	RegisterContentRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterFormRoutes(api, hb, config.AppConfig.FormRatePerMin)
	RegisterAdminRoutes(api, hb)
}

// gin-contrib/cors refuses a wildcard origin combined with credentials.
func allowsAnyOrigin() bool {
	for _, o := range config.Origins() {
		if o == "*" {
			return true
		}
	}
	return false
}
