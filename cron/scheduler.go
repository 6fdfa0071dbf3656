package cron

import (
	"context"
	"fmt"
	"time"

	"facestudio/services/booking"
	"facestudio/utils"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultCompletionSchedule = "*/15 * * * *"
	DefaultReminderSchedule   = "0 18 * * *"
	jobTimeout                = 2 * time.Minute
)

// Jobs are the periodic reservation chores.
type Jobs struct {
	Reservations booking.ReservationService
}

// CompleteFinished marks reservations whose end has passed as completed.
func (j *Jobs) CompleteFinished(ctx context.Context) {
	logger := utils.GetLogger()
	n, err := j.Reservations.CompletePastReservations(ctx)
	if err != nil {
		logger.Error("Cron job: completing reservations failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("Cron job: reservations completed", zap.Int("count", n))
	}
}

// RemindTomorrow sends reminders for the next day's confirmed reservations.
func (j *Jobs) RemindTomorrow(ctx context.Context) {
	logger := utils.GetLogger()
	n, err := j.Reservations.SendReminders(ctx)
	if err != nil {
		logger.Error("Cron job: sending reminders failed", zap.Error(err))
		return
	}
	logger.Info("Cron job: reminders sent", zap.Int("count", n))
}

// StartScheduler registers the jobs on the studio clock and starts them.
// Stop the returned scheduler on shutdown.
func StartScheduler(jobs *Jobs, loc *time.Location, completionSpec, reminderSpec string) (*robfig.Cron, error) {
	if completionSpec == "" {
		completionSpec = DefaultCompletionSchedule
	}
	if reminderSpec == "" {
		reminderSpec = DefaultReminderSchedule
	}

	c := robfig.New(
		robfig.WithLocation(loc),
		robfig.WithChain(robfig.Recover(cronLogger{}), robfig.SkipIfStillRunning(cronLogger{})),
	)
	if _, err := c.AddFunc(completionSpec, withTimeout(jobs.CompleteFinished)); err != nil {
		return nil, fmt.Errorf("schedule completion job %q: %w", completionSpec, err)
	}
	if _, err := c.AddFunc(reminderSpec, withTimeout(jobs.RemindTomorrow)); err != nil {
		return nil, fmt.Errorf("schedule reminder job %q: %w", reminderSpec, err)
	}
	c.Start()
	utils.GetLogger().Info("Scheduler started",
		zap.String("completion", completionSpec),
		zap.String("reminders", reminderSpec),
		zap.String("location", loc.String()))
	return c, nil
}

func withTimeout(job func(context.Context)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		job(ctx)
	}
}

// cronLogger adapts zap to the scheduler's logger interface.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	utils.GetLogger().Sugar().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	utils.GetLogger().Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
