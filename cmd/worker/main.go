package main

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"vidtube/internal/config"
	"vidtube/internal/db"
	"vidtube/internal/worker"
	"vidtube/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Error loading config: %v", err)
	}
	cfg.ConfigureLogging()

	conn, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Error connecting to database: %v", err)
	}
	store := db.New(conn, cfg.QueryTimeout)
	defer store.Close()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				tasks.QueueDefault: 1,
			},
			RetryDelayFunc: retryDelay,
			Logger:         logrus.StandardLogger(),
		},
	)

	mux := asynq.NewServeMux()
	worker.NewTaskHandler(store).Register(mux)

	logrus.Infof("Worker starting (commit: %s)", CommitSHA)
	if err := srv.Run(mux); err != nil {
		logrus.Fatalf("could not run server: %v", err)
	}
}

// retryDelay backs off exponentially: 1s, 2s, 4s ... capped at one minute.
func retryDelay(n int, err error, task *asynq.Task) time.Duration {
	delay := time.Second
	maxDelay := time.Minute

	for i := 0; i < n; i++ {
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
			break
		}
	}

	logrus.WithError(err).Warnf("Task %s failed %d times, retrying in %v", task.Type(), n+1, delay)
	return delay
}
