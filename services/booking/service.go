package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	reservationRepo "facestudio/database/repository/reservation"
	treatmentRepo "facestudio/database/repository/treatment"
	"facestudio/models"
	"facestudio/utils"

	"go.uber.org/zap"
)

func (s *DefaultReservationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultReservationService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func (s *DefaultReservationService) bookableTreatment(ctx context.Context, id int64) (*models.Treatment, error) {
	if id <= 0 {
		return nil, newValidationError("treatment_id", "is required")
	}
	t, err := s.Treatments.GetByID(ctx, id)
	if errors.Is(err, treatmentRepo.ErrNotFound) || (err == nil && !t.IsActive) {
		return nil, ErrTreatmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load treatment %d: %w", id, err)
	}
	return t, nil
}

func (s *DefaultReservationService) bookedOn(ctx context.Context, date time.Time) ([]Interval, error) {
	existing, err := s.Reservations.ListActiveByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load reservations for %s: %w", date.Format(models.DateLayout), err)
	}
	return s.Calculator.Intervals(existing), nil
}

func parseDateField(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, newValidationError("date", "is required")
	}
	d, err := models.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, newValidationError("date", err.Error())
	}
	return d, nil
}

// GetAvailableSlots lists the free start/end pairs for a treatment on a date.
func (s *DefaultReservationService) GetAvailableSlots(ctx context.Context, treatmentID int64, date string) ([]models.Slot, error) {
	day, err := parseDateField(date)
	if err != nil {
		return nil, err
	}
	t, err := s.bookableTreatment(ctx, treatmentID)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookedOn(ctx, day)
	if err != nil {
		return nil, err
	}

	free, err := s.Calculator.Slots(day, t.Duration(), booked, s.now())
	if err != nil {
		return nil, err
	}
	slots := make([]models.Slot, 0, len(free))
	for _, iv := range free {
		slots = append(slots, iv.Slot())
	}
	return slots, nil
}

// CreateReservation validates the requested time against hours, lead time and
// existing bookings, then inserts it with the guarded statement.
func (s *DefaultReservationService) CreateReservation(ctx context.Context, userID int64, lang string, req models.ReservationRequest) (*models.Reservation, error) {
	logger := s.logger()

	day, err := parseDateField(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := models.ParseClock(strings.TrimSpace(req.StartTime))
	if err != nil {
		return nil, newValidationError("start_time", err.Error())
	}
	t, err := s.bookableTreatment(ctx, req.TreatmentID)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookedOn(ctx, day)
	if err != nil {
		return nil, err
	}

	loc := s.Calculator.loc()
	begins := start.On(day, loc)
	candidate := Interval{Start: begins, End: begins.Add(t.Duration())}
	if err := s.Calculator.Validate(candidate, booked, s.now()); err != nil {
		return nil, err
	}

	r := &models.Reservation{
		UserID:      userID,
		TreatmentID: t.ID,
		Date:        day,
		StartTime:   models.ClockOf(candidate.Start),
		EndTime:     models.ClockOf(candidate.End),
		Status:      models.StatusConfirmed,
		Notes:       strings.TrimSpace(req.Notes),
		Language:    models.NormalizeLang(lang),
	}
	if err := s.Reservations.CreateIfAvailable(ctx, r); err != nil {
		if errors.Is(err, reservationRepo.ErrSlotTaken) {
			logger.Info("CreateReservation: lost race for slot",
				zap.String("date", r.DateString()),
				zap.String("start", r.StartTime.String()))
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	// Reload for the joined customer and treatment fields the emails need.
	if full, err := s.Reservations.GetByID(ctx, r.ID); err == nil {
		r = full
	} else {
		logger.Warn("CreateReservation: reload failed", zap.Int64("id", r.ID), zap.Error(err))
		r.TreatmentTitle = t.Title
	}
	logger.Info("CreateReservation: reservation created",
		zap.Int64("id", r.ID),
		zap.Int64("user_id", userID),
		zap.String("date", r.DateString()),
		zap.String("start", r.StartTime.String()))

	s.collectEmail(ctx, r)
	if s.Notifier != nil {
		if err := s.Notifier.ReservationCreated(ctx, r, t); err != nil {
			logger.Error("CreateReservation: notification failed", zap.Int64("id", r.ID), zap.Error(err))
		}
	}
	s.record(ctx, models.ActivityReservationCreated, r, map[string]any{
		"date":  r.DateString(),
		"start": r.StartTime.String(),
		"end":   r.EndTime.String(),
	})
	return r, nil
}

func (s *DefaultReservationService) ListUserReservations(ctx context.Context, userID int64) ([]models.Reservation, error) {
	list, err := s.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations for user %d: %w", userID, err)
	}
	return list, nil
}

// CancelReservation cancels one of the user's own upcoming reservations.
// Someone else's reservation is reported as not found.
func (s *DefaultReservationService) CancelReservation(ctx context.Context, userID, reservationID int64) (*models.Reservation, error) {
	r, err := s.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, ErrReservationNotFound
	}
	switch r.Status {
	case models.StatusCancelled:
		return nil, ErrAlreadyCancelled
	case models.StatusCompleted:
		return nil, ErrNotCancellable
	}

	if err := s.Reservations.UpdateStatus(ctx, r.ID, models.StatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel reservation %d: %w", r.ID, err)
	}
	r.Status = models.StatusCancelled

	if s.Notifier != nil {
		if err := s.Notifier.ReservationCancelled(ctx, r); err != nil {
			s.logger().Error("CancelReservation: notification failed", zap.Int64("id", r.ID), zap.Error(err))
		}
	}
	s.record(ctx, models.ActivityReservationCancelled, r, map[string]any{"by": "customer"})
	return r, nil
}

func (s *DefaultReservationService) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	list, err := s.Reservations.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return list, nil
}

func (s *DefaultReservationService) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	r, err := s.Reservations.GetByID(ctx, id)
	if errors.Is(err, reservationRepo.ErrNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load reservation %d: %w", id, err)
	}
	return r, nil
}

// UpdateReservationStatus is the admin status change. Moving a cancelled
// reservation back to an active status re-checks its slot first.
func (s *DefaultReservationService) UpdateReservationStatus(ctx context.Context, id int64, status models.ReservationStatus) (*models.Reservation, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	r, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == status {
		return r, nil
	}

	previous := r.Status
	if previous == models.StatusCancelled {
		booked, err := s.bookedOn(ctx, r.Date)
		if err != nil {
			return nil, err
		}
		if err := CheckOverlap(s.Calculator.ReservationInterval(*r), booked); err != nil {
			return nil, err
		}
		err = s.Reservations.ReactivateIfAvailable(ctx, r, status)
		switch {
		case errors.Is(err, reservationRepo.ErrSlotTaken):
			return nil, ErrSlotUnavailable
		case errors.Is(err, reservationRepo.ErrNotFound):
			return nil, ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrNotCancelled):
			// Someone else restored it first; report the row as it is now.
			return s.GetReservation(ctx, id)
		case err != nil:
			return nil, fmt.Errorf("reactivate reservation %d: %w", r.ID, err)
		}
	} else if err := s.Reservations.UpdateStatus(ctx, r.ID, status); err != nil {
		if errors.Is(err, reservationRepo.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("update reservation %d: %w", r.ID, err)
	}
	r.Status = status
	s.record(ctx, models.ActivityReservationStatus, r, map[string]any{
		"from": string(previous),
		"to":   string(status),
		"by":   "admin",
	})
	return r, nil
}

// CompletePastReservations marks every pending or confirmed reservation whose end
// has passed on the studio clock as completed.
func (s *DefaultReservationService) CompletePastReservations(ctx context.Context) (int, error) {
	now := s.now().In(s.Calculator.loc())
	ids, err := s.Reservations.CompleteEndedBefore(ctx, models.CalendarDate(now), models.ClockOf(now))
	if err != nil {
		return 0, fmt.Errorf("complete past reservations: %w", err)
	}
	for _, id := range ids {
		s.record(ctx, models.ActivityReservationCompleted, &models.Reservation{ID: id}, nil)
	}
	return len(ids), nil
}

// SendReminders emails every customer with a confirmed reservation tomorrow.
// It returns how many reminders were handed off.
func (s *DefaultReservationService) SendReminders(ctx context.Context) (int, error) {
	if s.Notifier == nil {
		return 0, nil
	}
	tomorrow := models.CalendarDate(s.now().In(s.Calculator.loc())).AddDate(0, 0, 1)
	list, err := s.Reservations.List(ctx, models.ReservationFilter{
		From:   &tomorrow,
		To:     &tomorrow,
		Status: models.StatusConfirmed,
	})
	if err != nil {
		return 0, fmt.Errorf("list reservations for reminders: %w", err)
	}

	sent := 0
	for i := range list {
		if err := s.Notifier.ReservationReminder(ctx, &list[i]); err != nil {
			s.logger().Error("SendReminders: reminder failed", zap.Int64("id", list[i].ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *DefaultReservationService) collectEmail(ctx context.Context, r *models.Reservation) {
	if s.Emails == nil || r.CustomerEmail == "" {
		return
	}
	uid := r.UserID
	first, last, _ := strings.Cut(r.CustomerName, " ")
	entry := &models.CollectedEmail{
		Email:     r.CustomerEmail,
		Source:    models.SourceReservation,
		UserID:    &uid,
		FirstName: first,
		LastName:  last,
		Mobile:    r.CustomerMobile,
	}
	if _, err := s.Emails.CollectEmail(ctx, entry); err != nil {
		s.logger().Warn("CreateReservation: email collection failed", zap.Error(err))
	}
}

func (s *DefaultReservationService) record(ctx context.Context, kind string, r *models.Reservation, payload map[string]any) {
	if s.Activity == nil {
		return
	}
	event := models.ActivityEvent{
		Type:          kind,
		ReservationID: r.ID,
		UserID:        r.UserID,
		Payload:       payload,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.Activity.Record(ctx, event); err != nil {
		s.logger().Warn("Failed to record activity", zap.String("type", kind), zap.Int64("reservation_id", r.ID), zap.Error(err))
	}
}
