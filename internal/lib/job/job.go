// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued with an asynq.Client
//   - a server runs the workers that process them
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// EmailSender delivers the emails job handlers produce.
type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, to, name string) error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client  *asynq.Client
	server  *asynq.Server
	sender  EmailSender
	logger  *zerolog.Logger
	started bool
}

// NewJobService creates a JobService using the Redis at redisAddr.
//
// Queue weights give "critical" tasks the largest share of the 10 workers.
func NewJobService(logger *zerolog.Logger, redisAddr string, sender EmailSender) *JobService {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: &asynqLogger{logger: logger},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		sender: sender,
		logger: logger,
	}
}

// EnqueueWelcomeEmail schedules the welcome email for a new user.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, name string) error {
	task, err := NewWelcomeEmailTask(to, name)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("type", TaskWelcome).
		Msg("task enqueued")

	return nil
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	return mux
}

// Start starts the background worker server. It does not block.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")
	if err := j.server.Start(j.Mux()); err != nil {
		return err
	}
	j.started = true
	return nil
}

// Stop shuts down the worker server. It is a no-op unless Start succeeded.
func (j *JobService) Stop() {
	if !j.started {
		return
	}
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.started = false
}

// Close stops the workers, if running, and closes the enqueue client.
func (j *JobService) Close() {
	j.Stop()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}

// asynqLogger adapts zerolog to asynq.Logger.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }
