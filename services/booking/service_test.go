package booking

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	inquiryRepo "facestudio/database/repository/inquiry"
	reservationRepo "facestudio/database/repository/reservation"
	treatmentRepo "facestudio/database/repository/treatment"
	"facestudio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memReservations struct {
	rows   map[int64]*models.Reservation
	nextID int64
	// raceWith is inserted just before the next guarded write runs.
	raceWith *models.Reservation
}

func newMemReservations() *memReservations {
	return &memReservations{rows: map[int64]*models.Reservation{}}
}

func (m *memReservations) put(r models.Reservation) *models.Reservation {
	m.nextID++
	r.ID = m.nextID
	if r.Status == "" {
		r.Status = models.StatusConfirmed
	}
	m.rows[r.ID] = &r
	return &r
}

func (m *memReservations) sorted() []models.Reservation {
	out := []models.Reservation{}
	for _, r := range m.rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memReservations) ListActiveByDate(_ context.Context, date time.Time) ([]models.Reservation, error) {
	out := []models.Reservation{}
	for _, r := range m.sorted() {
		if r.Date.Equal(models.CalendarDate(date)) && r.Active() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservations) runRace() {
	if m.raceWith != nil {
		m.put(*m.raceWith)
		m.raceWith = nil
	}
}

func (m *memReservations) overlapsLive(r *models.Reservation) bool {
	for _, other := range m.rows {
		if other.ID != r.ID && other.Active() && other.Date.Equal(r.Date) && other.StartTime < r.EndTime && r.StartTime < other.EndTime {
			return true
		}
	}
	return false
}

func (m *memReservations) CreateIfAvailable(_ context.Context, r *models.Reservation) error {
	m.runRace()
	if m.overlapsLive(r) {
		return reservationRepo.ErrSlotTaken
	}
	stored := m.put(*r)
	r.ID = stored.ID
	return nil
}

func (m *memReservations) GetByID(_ context.Context, id int64) (*models.Reservation, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	cp := *r
	cp.TreatmentTitle = models.Localized{HR: "Tretman lica", EN: "Facial"}
	cp.CustomerName = "Ana Horvat"
	cp.CustomerEmail = "ana@example.com"
	return &cp, nil
}

func (m *memReservations) ListByUser(_ context.Context, userID int64) ([]models.Reservation, error) {
	out := []models.Reservation{}
	for _, r := range m.sorted() {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservations) List(_ context.Context, f models.ReservationFilter) ([]models.Reservation, error) {
	out := []models.Reservation{}
	for _, r := range m.sorted() {
		if f.From != nil && r.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && r.Date.After(*f.To) {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		r.CustomerEmail = "ana@example.com"
		out = append(out, r)
	}
	return out, nil
}

func (m *memReservations) UpdateStatus(_ context.Context, id int64, status models.ReservationStatus) error {
	r, ok := m.rows[id]
	if !ok {
		return reservationRepo.ErrNotFound
	}
	r.Status = status
	return nil
}

func (m *memReservations) ReactivateIfAvailable(_ context.Context, r *models.Reservation, status models.ReservationStatus) error {
	m.runRace()
	row, ok := m.rows[r.ID]
	switch {
	case !ok:
		return reservationRepo.ErrNotFound
	case row.Status != models.StatusCancelled:
		return reservationRepo.ErrNotCancelled
	case m.overlapsLive(row):
		return reservationRepo.ErrSlotTaken
	}
	row.Status = status
	r.Status = status
	return nil
}

func (m *memReservations) CompleteEndedBefore(_ context.Context, date time.Time, at models.ClockTime) ([]int64, error) {
	var ids []int64
	for _, r := range m.sorted() {
		if r.Status != models.StatusPending && r.Status != models.StatusConfirmed {
			continue
		}
		if r.Date.Before(date) || (r.Date.Equal(date) && r.EndTime <= at) {
			m.rows[r.ID].Status = models.StatusCompleted
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

type memTreatments struct {
	treatmentRepo.TreatmentRepository
	rows map[int64]*models.Treatment
}

func (m *memTreatments) GetByID(_ context.Context, id int64) (*models.Treatment, error) {
	t, ok := m.rows[id]
	if !ok {
		return nil, treatmentRepo.ErrNotFound
	}
	return t, nil
}

type memEmails struct {
	inquiryRepo.InquiryRepository
	collected []models.CollectedEmail
}

func (m *memEmails) CollectEmail(_ context.Context, e *models.CollectedEmail) (bool, error) {
	m.collected = append(m.collected, *e)
	return true, nil
}

type recordingNotifier struct {
	created, cancelled, reminded []int64
	fail                         bool
}

func (n *recordingNotifier) ReservationCreated(_ context.Context, r *models.Reservation, _ *models.Treatment) error {
	n.created = append(n.created, r.ID)
	if n.fail {
		return errors.New("smtp down")
	}
	return nil
}

func (n *recordingNotifier) ReservationCancelled(_ context.Context, r *models.Reservation) error {
	n.cancelled = append(n.cancelled, r.ID)
	return nil
}

func (n *recordingNotifier) ReservationReminder(_ context.Context, r *models.Reservation) error {
	n.reminded = append(n.reminded, r.ID)
	return nil
}

func (n *recordingNotifier) ContactReceived(context.Context, *models.ContactSubmission) error {
	return nil
}

func (n *recordingNotifier) VoucherOrdered(context.Context, *models.GiftVoucher, string) error {
	return nil
}

type memActivity struct {
	events []models.ActivityEvent
}

func (m *memActivity) Record(_ context.Context, e models.ActivityEvent) error {
	m.events = append(m.events, e)
	return nil
}

func (m *memActivity) ListByReservation(context.Context, int64) ([]models.ActivityEvent, error) {
	return m.events, nil
}

type fixture struct {
	svc          *DefaultReservationService
	reservations *memReservations
	emails       *memEmails
	notifier     *recordingNotifier
	activity     *memActivity
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	f := &fixture{
		reservations: newMemReservations(),
		emails:       &memEmails{},
		notifier:     &recordingNotifier{},
		activity:     &memActivity{},
	}
	treatments := &memTreatments{rows: map[int64]*models.Treatment{
		1: {ID: 1, Title: models.Localized{HR: "Tretman lica", EN: "Facial"}, DurationHours: 1, IsActive: true},
		2: {ID: 2, Title: models.Localized{HR: "Masaža", EN: "Massage"}, DurationMinutes: 45, IsActive: false},
		3: {ID: 3, Title: models.Localized{HR: "Ništa"}, IsActive: true},
	}}
	f.svc = &DefaultReservationService{
		Calculator:   testCalculator(t),
		Reservations: f.reservations,
		Treatments:   treatments,
		Emails:       f.emails,
		Activity:     f.activity,
		Notifier:     f.notifier,
		Logger:       zap.NewNop(),
		Now:          func() time.Time { return now },
	}
	return f
}

func fridayMorning(t *testing.T) time.Time {
	return time.Date(2026, 7, 10, 8, 0, 0, 0, zagreb(t))
}

func TestGetAvailableSlots(t *testing.T) {
	f := newFixture(t, fridayMorning(t))
	f.reservations.put(models.Reservation{Date: tuesday, StartTime: 600, EndTime: 660})
	f.reservations.put(models.Reservation{Date: tuesday, StartTime: 720, EndTime: 780, Status: models.StatusCancelled})

	slots, err := f.svc.GetAvailableSlots(context.Background(), 1, "2026-07-14")
	require.NoError(t, err)
	require.Len(t, slots, 22)
	assert.Equal(t, models.Slot{Start: "09:00", End: "10:00"}, slots[0])
	assert.Equal(t, models.Slot{Start: "11:00", End: "12:00"}, slots[1])
	assert.Contains(t, slots, models.Slot{Start: "12:00", End: "13:00"})
}

func TestGetAvailableSlotsErrors(t *testing.T) {
	f := newFixture(t, fridayMorning(t))
	ctx := context.Background()

	var verr *ValidationError
	_, err := f.svc.GetAvailableSlots(ctx, 1, "14.07.2026")
	assert.ErrorAs(t, err, &verr)
	_, err = f.svc.GetAvailableSlots(ctx, 0, "2026-07-14")
	assert.ErrorAs(t, err, &verr)
	_, err = f.svc.GetAvailableSlots(ctx, 99, "2026-07-14")
	assert.ErrorIs(t, err, ErrTreatmentNotFound)
	_, err = f.svc.GetAvailableSlots(ctx, 2, "2026-07-14")
	assert.ErrorIs(t, err, ErrTreatmentNotFound)
	_, err = f.svc.GetAvailableSlots(ctx, 3, "2026-07-14")
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestCreateReservation(t *testing.T) {
	f := newFixture(t, fridayMorning(t))

	r, err := f.svc.CreateReservation(context.Background(), 7, "en", models.ReservationRequest{
		TreatmentID: 1,
		Date:        "2026-07-14",
		StartTime:   "10:00",
		Notes:       "  sensitive skin ",
	})
	require.NoError(t, err)

	assert.Equal(t, "10:00", r.StartTime.String())
	assert.Equal(t, "11:00", r.EndTime.String())
	assert.Equal(t, models.StatusConfirmed, r.Status)
	assert.Equal(t, "sensitive skin", r.Notes)
	assert.Equal(t, models.LangEN, r.Language)
	assert.Equal(t, int64(7), r.UserID)

	assert.Equal(t, []int64{r.ID}, f.notifier.created)
	require.Len(t, f.emails.collected, 1)
	assert.Equal(t, models.SourceReservation, f.emails.collected[0].Source)
	assert.Equal(t, "Ana", f.emails.collected[0].FirstName)
	require.Len(t, f.activity.events, 1)
	assert.Equal(t, models.ActivityReservationCreated, f.activity.events[0].Type)
}

func TestCreateReservationRejections(t *testing.T) {
	f := newFixture(t, fridayMorning(t))
	f.reservations.put(models.Reservation{Date: tuesday, StartTime: 600, EndTime: 660})
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.ReservationRequest
		want error
	}{
		{"overlap", models.ReservationRequest{TreatmentID: 1, Date: "2026-07-14", StartTime: "10:30"}, ErrSlotUnavailable},
		{"closed day", models.ReservationRequest{TreatmentID: 1, Date: "2026-07-18", StartTime: "10:00"}, ErrClosedDay},
		{"after hours", models.ReservationRequest{TreatmentID: 1, Date: "2026-07-14", StartTime: "16:30"}, ErrOutsideBusinessHours},
		{"past", models.ReservationRequest{TreatmentID: 1, Date: "2026-07-09", StartTime: "13:00"}, ErrPastDate},
		{"unknown treatment", models.ReservationRequest{TreatmentID: 42, Date: "2026-07-14", StartTime: "12:00"}, ErrTreatmentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateReservation(ctx, 7, "hr", tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	var verr *ValidationError
	_, err := f.svc.CreateReservation(ctx, 7, "hr", models.ReservationRequest{TreatmentID: 1, Date: "2026-07-14"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "start_time", verr.Field)
	_, err = f.svc.CreateReservation(ctx, 7, "hr", models.ReservationRequest{TreatmentID: 1, Date: "2026-07-14", StartTime: "25:00"})
	assert.ErrorAs(t, err, &verr)

	assert.Empty(t, f.notifier.created)
	assert.Len(t, f.reservations.rows, 1)
}

func TestCreateReservationLosesRace(t *testing.T) {
	f := newFixture(t, fridayMorning(t))
	f.reservations.raceWith = &models.Reservation{Date: tuesday, StartTime: 600, EndTime: 660}

	_, err := f.svc.CreateReservation(context.Background(), 7, "hr", models.ReservationRequest{
		TreatmentID: 1, Date: "2026-07-14", StartTime: "10:15",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, f.notifier.created)
}

func TestCreateReservationSurvivesNotificationFailure(t *testing.T) {
	f := newFixture(t, fridayMorning(t))
	f.notifier.fail = true

	r, err := f.svc.CreateReservation(context.Background(), 7, "hr", models.ReservationRequest{
		TreatmentID: 1, Date: "2026-07-14", StartTime: "09:00",
	})
	require.NoError(t, err)
	assert.NotZero(t, r.ID)
}

func TestCancelReservation(t *testing.T) {
	f := newFixture(t, fridayMorning(t))
	ctx := context.Background()
	mine := f.reservations.put(models.Reservation{UserID: 7, Date: tuesday, StartTime: 600, EndTime: 660})
	done := f.reservations.put(models.Reservation{UserID: 7, Date: tuesday, StartTime: 700, EndTime: 760, Status: models.StatusCompleted})

	_, err := f.svc.CancelReservation(ctx, 8, mine.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	_, err = f.svc.CancelReservation(ctx, 7, 999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	_, err = f.svc.CancelReservation(ctx, 7, done.ID)
	assert.ErrorIs(t, err, ErrNotCancellable)

	r, err := f.svc.CancelReservation(ctx, 7, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, r.Status)
	assert.Equal(t, []int64{mine.ID}, f.notifier.cancelled)

	_, err = f.svc.CancelReservation(ctx, 7, mine.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	// The freed slot is bookable again.
	slots, err := f.svc.GetAvailableSlots(ctx, 1, "2026-07-14")
	require.NoError(t, err)
	assert.Contains(t, slots, models.Slot{Start: "10:00", End: "11:00"})
}

func TestUpdateReservationStatus(t *testing.T) {
	f := newFixture(t, fridayMorning(t))
	ctx := context.Background()
	cancelled := f.reservations.put(models.Reservation{Date: tuesday, StartTime: 600, EndTime: 660, Status: models.StatusCancelled})

	_, err := f.svc.UpdateReservationStatus(ctx, cancelled.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	r, err := f.svc.UpdateReservationStatus(ctx, cancelled.ID, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, r.Status)

	// Cancel it again, let someone else take the slot, then try to reactivate.
	_, err = f.svc.UpdateReservationStatus(ctx, cancelled.ID, models.StatusCancelled)
	require.NoError(t, err)
	f.reservations.put(models.Reservation{Date: tuesday, StartTime: 630, EndTime: 690})

	_, err = f.svc.UpdateReservationStatus(ctx, cancelled.ID, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	_, err = f.svc.UpdateReservationStatus(ctx, 999, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestReactivationLosesRaceToOverlappingBooking(t *testing.T) {
	f := newFixture(t, fridayMorning(t))
	ctx := context.Background()
	cancelled := f.reservations.put(models.Reservation{Date: tuesday, StartTime: 600, EndTime: 660, Status: models.StatusCancelled})

	// The slot is free when checked, then a booking starting at 10:30 lands first.
	f.reservations.raceWith = &models.Reservation{Date: tuesday, StartTime: 630, EndTime: 690}
	_, err := f.svc.UpdateReservationStatus(ctx, cancelled.ID, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, models.StatusCancelled, f.reservations.rows[cancelled.ID].Status)
}

func TestCompletePastReservations(t *testing.T) {
	now := time.Date(2026, 7, 14, 11, 30, 0, 0, zagreb(t))
	f := newFixture(t, now)
	past := f.reservations.put(models.Reservation{Date: tuesday.AddDate(0, 0, -1), StartTime: 800, EndTime: 860})
	endedToday := f.reservations.put(models.Reservation{Date: tuesday, StartTime: 600, EndTime: 660, Status: models.StatusPending})
	f.reservations.put(models.Reservation{Date: tuesday, StartTime: 660, EndTime: 720})
	f.reservations.put(models.Reservation{Date: tuesday.AddDate(0, 0, -2), StartTime: 600, EndTime: 660, Status: models.StatusCancelled})

	n, err := f.svc.CompletePastReservations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, models.StatusCompleted, f.reservations.rows[past.ID].Status)
	assert.Equal(t, models.StatusCompleted, f.reservations.rows[endedToday.ID].Status)
	assert.Len(t, f.activity.events, 2)
}

func TestSendReminders(t *testing.T) {
	f := newFixture(t, time.Date(2026, 7, 13, 18, 0, 0, 0, zagreb(t)))
	tomorrow := f.reservations.put(models.Reservation{Date: tuesday, StartTime: 600, EndTime: 660})
	f.reservations.put(models.Reservation{Date: tuesday, StartTime: 700, EndTime: 760, Status: models.StatusCancelled})
	f.reservations.put(models.Reservation{Date: tuesday.AddDate(0, 0, 1), StartTime: 600, EndTime: 660})

	n, err := f.svc.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []int64{tomorrow.ID}, f.notifier.reminded)
}
