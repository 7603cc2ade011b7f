package handlers

import (
	"net/http"

	"vidtube/internal/query"
)

// GetVideoComments pages through a video's comments using page and limit.
func (h *Handlers) GetVideoComments(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoId", "video")
	if err != nil {
		respondError(w, r, err)
		return
	}
	pagination, err := query.ParsePagination(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, err := h.store.ListVideoComments(r.Context(), videoID, pagination)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page, "Comments fetched successfully")
}

func (h *Handlers) GetUserTweets(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId", "user")
	if err != nil {
		respondError(w, r, err)
		return
	}

	tweets, err := h.store.ListUserTweets(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tweets, "Tweets fetched successfully")
}
