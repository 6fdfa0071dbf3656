package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"facestudio/models"

	"github.com/hibiken/asynq"
)

const (
	TypeEmailDeliver = "email:deliver"
	QueueEmails      = "emails"
)

// NewEmailTask wraps a rendered message for the worker. Delivery is retried by asynq.
func NewEmailTask(msg models.EmailMessage) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal email task: %w", err)
	}
	task := asynq.NewTask(TypeEmailDeliver, b)
	opts := []asynq.Option{
		asynq.Queue(QueueEmails),
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// ParseEmailTask is the worker-side inverse of NewEmailTask.
func ParseEmailTask(task *asynq.Task) (models.EmailMessage, error) {
	var msg models.EmailMessage
	if err := json.Unmarshal(task.Payload(), &msg); err != nil {
		return msg, fmt.Errorf("invalid email payload: %w", err)
	}
	if len(msg.To) == 0 {
		return msg, fmt.Errorf("email payload has no recipients")
	}
	return msg, nil
}
