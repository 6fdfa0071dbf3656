package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"facestudio/services/booking"
	"facestudio/services/content"
	"facestudio/services/inquiry"
	"facestudio/services/user"
	"facestudio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	notFoundErrors = []error{
		booking.ErrTreatmentNotFound, booking.ErrReservationNotFound,
		content.ErrTreatmentNotFound, content.ErrArticleNotFound,
		user.ErrUserNotFound,
		inquiry.ErrTreatmentNotFound, inquiry.ErrNotFound,
	}
	conflictErrors = []error{
		booking.ErrSlotUnavailable,
		content.ErrDuplicateSlug,
		user.ErrUserExists,
	}
	badRequestErrors = []error{
		booking.ErrInvalidDuration, booking.ErrClosedDay, booking.ErrOutsideBusinessHours,
		booking.ErrPastDate, booking.ErrTooSoon,
		booking.ErrAlreadyCancelled, booking.ErrNotCancellable, booking.ErrInvalidStatus,
		content.ErrInvalidKind,
		user.ErrInvalidRole,
		inquiry.ErrSpam,
	}
)

func matchesAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// validationMessage unwraps any of the per-service field errors.
func validationMessage(err error) (string, bool) {
	var (
		be *booking.ValidationError
		ce *content.ValidationError
		ue *user.ValidationError
		ie *inquiry.ValidationError
	)
	switch {
	case errors.As(err, &be):
		return be.Error(), true
	case errors.As(err, &ce):
		return ce.Error(), true
	case errors.As(err, &ue):
		return ue.Error(), true
	case errors.As(err, &ie):
		return ie.Error(), true
	}
	return "", false
}

// statusFor maps a service error onto the HTTP status the API reports for it.
func statusFor(err error) int {
	if _, ok := validationMessage(err); ok {
		return http.StatusBadRequest
	}
	switch {
	case matchesAny(err, notFoundErrors):
		return http.StatusNotFound
	case matchesAny(err, conflictErrors):
		return http.StatusConflict
	case matchesAny(err, badRequestErrors):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, content.ErrNoStorage):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the JSON error body for err. Internal failures are
// logged in full and reported without details.
func respondError(c *gin.Context, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		getLogger(c).Error(op+": unexpected failure", zap.Error(err))
		utils.JSONError(c, status, "Internal Server Error", "An unexpected error occurred. Please try again later.")
		return
	}
	if msg, ok := validationMessage(err); ok {
		utils.JSONError(c, status, "Validation failed", msg)
		return
	}
	utils.JSONError(c, status, err.Error(), "")
}

func badRequest(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = bindingDetails(err)
	}
	utils.JSONError(c, http.StatusBadRequest, message, details)
}

// paramID parses a positive numeric path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// pageQuery reads ?page=, treating anything unparsable as the first page.
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
