package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"facestudio/config"
	"facestudio/handlers"
	"facestudio/models"
	"facestudio/services/booking"
	"facestudio/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReservations struct {
	booking.ReservationService
}

func (stubReservations) GetAvailableSlots(context.Context, int64, string) ([]models.Slot, error) {
	return []models.Slot{}, nil
}

func (stubReservations) ListReservations(context.Context, models.ReservationFilter) ([]models.Reservation, error) {
	return nil, nil
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.MaxRequestsPerMin = 1000
	config.AppConfig.FormRatePerMin = 5
	config.AppConfig.AllowedOrigins = "https://naomifacestudio.hr"

	hb := &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(nil),
		Booking: handlers.NewBookingHandler(stubReservations{}, nil),
		Content: handlers.NewContentHandler(nil),
		Inquiry: handlers.NewInquiryHandler(nil),
		Admin:   handlers.NewAdminHandler(nil),
		Health:  handlers.NewHealthHandler(utils.NewHealthMonitor(nil)),
	}
	r := gin.New()
	RegisterRoutes(r, hb)
	return r
}

func request(r *gin.Engine, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicRoutes(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/health/ready", "").Code)

	w := request(r, http.MethodGet, "/api/reservations/slots?treatment_id=1&date=2026-07-14", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"available_slots":[]}`, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/api/reservations", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/reservations/mine", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/admin/reservations", "").Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	r := newRouter(t)

	customer, err := utils.GenerateToken(5, "ana@example.com", models.RoleCustomer, time.Hour)
	require.NoError(t, err)
	admin, err := utils.GenerateToken(1, "info@naomifacestudio.hr", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, request(r, http.MethodGet, "/api/admin/reservations", customer).Code)

	w := request(r, http.MethodGet, "/api/admin/reservations", admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reservations":[]}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/treatments", nil)
	req.Header.Set("Origin", "https://naomifacestudio.hr")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://naomifacestudio.hr", w.Header().Get("Access-Control-Allow-Origin"))
}
