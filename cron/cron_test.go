package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"facestudio/models"
	"facestudio/services/booking"
	"facestudio/services/notification"
	"facestudio/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReservations struct {
	booking.ReservationService
	completed int
	reminded  int
	err       error
}

func (f *fakeReservations) CompletePastReservations(ctx context.Context) (int, error) {
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("job ran without a deadline")
	}
	f.completed++
	return 3, f.err
}

func (f *fakeReservations) SendReminders(context.Context) (int, error) {
	f.reminded++
	return 1, f.err
}

func TestJobsRunWithTimeout(t *testing.T) {
	f := &fakeReservations{}
	jobs := &Jobs{Reservations: f}

	withTimeout(jobs.CompleteFinished)()
	withTimeout(jobs.RemindTomorrow)()
	assert.Equal(t, 1, f.completed)
	assert.Equal(t, 1, f.reminded)

	f.err = errors.New("db down")
	withTimeout(jobs.CompleteFinished)()
	assert.Equal(t, 2, f.completed)
}

func TestStartScheduler(t *testing.T) {
	jobs := &Jobs{Reservations: &fakeReservations{}}

	c, err := StartScheduler(jobs, time.UTC, "", "")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 2)
	<-c.Stop().Done()

	_, err = StartScheduler(jobs, time.UTC, "every now and then", "")
	assert.Error(t, err)
}

type countingMailer struct{ sent []models.EmailMessage }

func (m *countingMailer) Send(_ context.Context, msg models.EmailMessage) error {
	m.sent = append(m.sent, msg)
	return nil
}

func TestEmailMuxRoutesDeliveries(t *testing.T) {
	mailer := &countingMailer{}
	mux := NewEmailMux(&notification.Deliverer{Mailer: mailer})

	task, _, err := tasks.NewEmailTask(models.EmailMessage{To: []string{"ana@example.com"}, Subject: "Hi", HTML: "<p>Hi</p>"})
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(context.Background(), task))
	assert.Len(t, mailer.sent, 1)

	assert.Error(t, mux.ProcessTask(context.Background(), asynq.NewTask("unknown:type", nil)))
}
