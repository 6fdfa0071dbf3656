package cron

import (
	"context"
	"time"

	"facestudio/config"
	"facestudio/services/notification"
	"facestudio/services/tasks"
	"facestudio/utils"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// QueueRedisOpt points asynq at the queue database, kept apart from the content cache.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewEmailMux routes queued tasks to their handlers.
func NewEmailMux(d *notification.Deliverer) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEmailDeliver, d.HandleEmailTask)
	return mux
}

// InitEmailWorker runs the email worker in the background. The caller shuts the
// returned server down on exit.
func InitEmailWorker(ctx context.Context, d *notification.Deliverer) *asynq.Server {
	logger := utils.GetLogger()
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				tasks.QueueEmails: 6,
				"default":         1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				logger.Warn("Task failed",
					zap.String("type", task.Type()),
					zap.Int("retry", retried),
					zap.Int("max_retry", maxRetry),
					zap.Error(err))
			}),
		},
	)
	mux := NewEmailMux(d)

	go monitorRedisConnection(ctx)

	go func() {
		logger.Info("Starting email worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Email worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("max_attempts", maxAttempts),
				zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Email worker gave up; emails stay queued until the next start")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

// monitorRedisConnection pings the queue database until ctx ends.
func monitorRedisConnection(ctx context.Context) {
	opt := QueueRedisOpt()
	client := redis.NewClient(&redis.Options{Addr: opt.Addr, Password: opt.Password, DB: opt.DB})
	defer client.Close()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				utils.GetLogger().Warn("Queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
