package handlers

import (
	"net/http"
	"strconv"
	"time"

	activityRepo "facestudio/database/repository/activity"
	"facestudio/middleware"
	"facestudio/models"
	"facestudio/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultListLimit = 100

// BookingHandler serves the reservation endpoints for customers and admins.
type BookingHandler struct {
	Service  booking.ReservationService
	Activity activityRepo.ActivityRepository
}

func NewBookingHandler(svc booking.ReservationService, activity activityRepo.ActivityRepository) *BookingHandler {
	return &BookingHandler{Service: svc, Activity: activity}
}

// AvailableSlots answers GET /api/reservations/slots?treatment_id=&date=.
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	treatmentID, err := strconv.ParseInt(c.Query("treatment_id"), 10, 64)
	if err != nil || treatmentID <= 0 {
		badRequest(c, "treatment_id is required", err)
		return
	}
	date := c.Query("date")
	if date == "" {
		badRequest(c, "date is required", nil)
		return
	}

	slots, err := h.Service.GetAvailableSlots(c.Request.Context(), treatmentID, date)
	if err != nil {
		respondError(c, "AvailableSlots", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available_slots": slots})
}

func (h *BookingHandler) CreateReservation(c *gin.Context) {
	var req models.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	userID := middleware.UserID(c)
	r, err := h.Service.CreateReservation(c.Request.Context(), userID, middleware.Language(c), req)
	if err != nil {
		respondError(c, "CreateReservation", err)
		return
	}
	getLogger(c).Info("Reservation created",
		zap.Int64("reservation_id", r.ID),
		zap.Int64("user_id", userID),
	)
	c.JSON(http.StatusCreated, r)
}

func (h *BookingHandler) MyReservations(c *gin.Context) {
	list, err := h.Service.ListUserReservations(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, "MyReservations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": nonNil(list)})
}

func (h *BookingHandler) CancelReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	r, err := h.Service.CancelReservation(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, "CancelReservation", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ListReservations is the admin listing, filtered by ?from=&to=&status= and paged by ?limit=&offset=.
func (h *BookingHandler) ListReservations(c *gin.Context) {
	filter := models.ReservationFilter{Limit: defaultListLimit}
	for key, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			badRequest(c, "Invalid "+key+" date, expected YYYY-MM-DD", nil)
			return
		}
		*dst = &d
	}
	if s := c.Query("status"); s != "" {
		filter.Status = models.ReservationStatus(s)
		if !filter.Status.Valid() {
			respondError(c, "ListReservations", booking.ErrInvalidStatus)
			return
		}
	}
	for key, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "Invalid "+key+", expected a non-negative integer", nil)
			return
		}
		*dst = n
	}

	list, err := h.Service.ListReservations(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "ListReservations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": nonNil(list)})
}

func (h *BookingHandler) GetReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	r, err := h.Service.GetReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetReservation", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status models.ReservationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	r, err := h.Service.UpdateReservationStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		respondError(c, "UpdateStatus", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ReservationActivity returns the audit trail kept for one reservation.
func (h *BookingHandler) ReservationActivity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if h.Activity == nil {
		c.JSON(http.StatusOK, gin.H{"activity": []models.ActivityEvent{}})
		return
	}
	events, err := h.Activity.ListByReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ReservationActivity", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": nonNil(events)})
}

// nonNil keeps empty listings serialised as [] rather than null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
