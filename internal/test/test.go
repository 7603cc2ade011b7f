package test

import (
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"

	"vidtube/internal/db"
)

// MockTaskEnqueuer is a mock implementation of tasks.TaskEnqueuer for testing.
type MockTaskEnqueuer struct {
	mu            sync.Mutex
	EnqueuedTasks []*asynq.Task
	Err           error
}

func (m *MockTaskEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.EnqueuedTasks = append(m.EnqueuedTasks, task)
	return &asynq.TaskInfo{ID: "test-task-id", Queue: "default"}, nil
}

// Tasks returns a snapshot of the enqueued tasks.
func (m *MockTaskEnqueuer) Tasks() []*asynq.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*asynq.Task(nil), m.EnqueuedTasks...)
}

// NewMockStore returns a Store backed by sqlmock. Expectations must be met
// by the end of the test.
func NewMockStore(t *testing.T) (*db.Store, sqlmock.Sqlmock) {
	t.Helper()

	mockDb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	sqlxDB := sqlx.NewDb(mockDb, "sqlmock")

	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
		mockDb.Close()
	})

	return db.New(sqlxDB, 0), mock
}
