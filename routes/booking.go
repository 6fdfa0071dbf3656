package routes

import (
	"facestudio/handlers"
	"facestudio/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the customer reservation endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	reservations := api.Group("/reservations")
	{
		reservations.GET("/slots", hb.Booking.AvailableSlots)

		protected := reservations.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", hb.Booking.CreateReservation)
		protected.GET("/mine", hb.Booking.MyReservations)
		protected.POST("/:id/cancel", hb.Booking.CancelReservation)
	}
}
