package tasks

import "github.com/hibiken/asynq"

// TaskEnqueuer is the part of asynq.Client the API needs. Tests swap in a
// recording implementation.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
