package handlers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"vidtube/internal/query"
	"vidtube/pkg/tasks"
)

// GetAllVideos is the discovery endpoint: text search, optional owner
// filter, sort and pagination.
func (h *Handlers) GetAllVideos(w http.ResponseWriter, r *http.Request) {
	search, err := query.ParseSearch(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, err := h.store.SearchVideos(r.Context(), search)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page, "Videos fetched successfully")
}

// GetVideoByID returns one video and queues a view for it.
func (h *Handlers) GetVideoByID(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoId", "video")
	if err != nil {
		respondError(w, r, err)
		return
	}

	video, err := h.store.GetVideoByID(r.Context(), videoID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	task, err := tasks.NewRecordViewTask(video.ID, time.Now())
	if err != nil {
		logrus.WithError(err).WithField("video_id", video.ID).Error("Error creating view task")
	} else if _, err := h.asynqClient.Enqueue(task); err != nil {
		logrus.WithError(err).WithField("video_id", video.ID).Error("Error enqueuing view task")
	}

	respondJSON(w, http.StatusOK, video, "Video fetched successfully")
}

// TogglePublishStatus flips a video between published and draft. Only the
// owner may do it.
func (h *Handlers) TogglePublishStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoId", "video")
	if err != nil {
		respondError(w, r, err)
		return
	}

	video, err := h.store.TogglePublishStatus(r.Context(), videoID, caller.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, video, "Publish status toggled successfully")
}
