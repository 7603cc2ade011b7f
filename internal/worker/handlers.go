package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/pkg/tasks"
)

// ViewRecorder is the store operation the worker needs.
type ViewRecorder interface {
	IncrementViews(ctx context.Context, videoID uuid.UUID) error
}

type TaskHandler struct {
	store ViewRecorder
}

func NewTaskHandler(store ViewRecorder) *TaskHandler {
	return &TaskHandler{store: store}
}

// Register wires every task type this worker handles.
func (h *TaskHandler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(tasks.TypeRecordView, h.HandleRecordViewTask)
}

func (h *TaskHandler) HandleRecordViewTask(ctx context.Context, t *asynq.Task) error {
	p, err := tasks.ParseRecordViewTask(t)
	if err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %v: %w", err, asynq.SkipRetry)
	}

	err = h.store.IncrementViews(ctx, p.VideoID)
	switch {
	case err == nil:
		logrus.WithField("video_id", p.VideoID).Debug("Recorded view")
		return nil
	case apperr.Is(err, apperr.NotFound):
		// The video was deleted after it was viewed.
		logrus.WithField("video_id", p.VideoID).Warn("Dropping view for missing video")
		return nil
	}
	return fmt.Errorf("failed to record view for video %s: %w", p.VideoID, err)
}
