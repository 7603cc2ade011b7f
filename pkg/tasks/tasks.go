package tasks

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	TypeRecordView = "video:view"

	QueueDefault = "default"
)

type RecordViewTaskPayload struct {
	VideoID  uuid.UUID
	ViewedAt time.Time
}

// NewRecordViewTask builds a task that adds one view to a video. Views are
// counted out of band so reading a video never waits on a write.
func NewRecordViewTask(videoID uuid.UUID, viewedAt time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(RecordViewTaskPayload{VideoID: videoID, ViewedAt: viewedAt})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRecordView, payload, asynq.Queue(QueueDefault), asynq.MaxRetry(5)), nil
}

// ParseRecordViewTask decodes a task built by NewRecordViewTask.
func ParseRecordViewTask(t *asynq.Task) (RecordViewTaskPayload, error) {
	var p RecordViewTaskPayload
	err := json.Unmarshal(t.Payload(), &p)
	return p, err
}
