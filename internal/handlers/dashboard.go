package handlers

import (
	"net/http"
)

// GetChannelStats reports the caller's channel counters.
func (h *Handlers) GetChannelStats(w http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	stats, err := h.store.ChannelStats(r.Context(), caller.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats, "Channel stats fetched successfully")
}

// GetChannelVideos lists every video of the caller's channel, published or
// not.
func (h *Handlers) GetChannelVideos(w http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	videos, err := h.store.GetVideosByOwner(r.Context(), caller.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, videos, "Videos fetched successfully")
}
