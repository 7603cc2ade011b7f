package handlers

import (
	"net/http"
)

func (h *Handlers) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	channelID, err := pathID(r, "channelId", "channel")
	if err != nil {
		respondError(w, r, err)
		return
	}

	sub, err := h.store.ToggleSubscription(r.Context(), channelID, caller.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if sub == nil {
		respondJSON(w, http.StatusOK, struct{}{}, "Channel subscription removed successfully")
		return
	}
	respondJSON(w, http.StatusOK, sub, "Channel subscription added successfully")
}

// GetChannelSubscribers lists who follows a channel. An empty list is a
// normal answer.
func (h *Handlers) GetChannelSubscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "channelId", "channel")
	if err != nil {
		respondError(w, r, err)
		return
	}

	entries, err := h.store.ListSubscribers(r.Context(), channelID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries, "Subscribers fetched successfully")
}

func (h *Handlers) GetSubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, err := pathID(r, "subscriberId", "subscriber")
	if err != nil {
		respondError(w, r, err)
		return
	}

	entries, err := h.store.ListSubscribedChannels(r.Context(), subscriberID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries, "Subscribed channels fetched successfully")
}
