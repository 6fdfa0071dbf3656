package notification

import (
	"context"
	"time"

	activityRepo "facestudio/database/repository/activity"
	"facestudio/models"
	"facestudio/services/tasks"
	"facestudio/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Deliverer is the worker side of the email queue.
type Deliverer struct {
	Mailer   Mailer
	Activity activityRepo.ActivityRepository
}

// HandleEmailTask delivers one queued message. A returned error makes asynq retry;
// a malformed payload is skipped since retrying cannot fix it.
func (d *Deliverer) HandleEmailTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()
	msg, err := tasks.ParseEmailTask(task)
	if err != nil {
		logger.Error("Dropping email task", zap.Error(err))
		return nil
	}

	if err := d.Mailer.Send(ctx, msg); err != nil {
		logger.Error("Email delivery failed",
			zap.String("kind", msg.Kind),
			zap.Strings("to", msg.To),
			zap.Error(err))
		d.record(ctx, models.ActivityEmailFailed, msg, err)
		return err
	}
	logger.Info("Email delivered", zap.String("kind", msg.Kind), zap.Strings("to", msg.To))
	d.record(ctx, models.ActivityEmailSent, msg, nil)
	return nil
}

func (d *Deliverer) record(ctx context.Context, kind string, msg models.EmailMessage, cause error) {
	if d.Activity == nil || msg.ReservationID == 0 {
		return
	}
	payload := map[string]any{"kind": msg.Kind, "to": msg.To}
	if cause != nil {
		payload["error"] = cause.Error()
	}
	event := models.ActivityEvent{
		Type:          kind,
		ReservationID: msg.ReservationID,
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}
	if err := d.Activity.Record(ctx, event); err != nil {
		utils.GetLogger().Warn("Failed to record email activity", zap.Error(err))
	}
}
