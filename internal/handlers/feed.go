package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"vidtube/internal/feed"
)

const feedItemLimit = 50

// GetChannelFeed serves a channel's latest published videos as RSS.
func (h *Handlers) GetChannelFeed(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "channelId", "channel")
	if err != nil {
		respondError(w, r, err)
		return
	}

	channel, err := h.store.GetUserByID(r.Context(), channelID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	videos, err := h.store.GetPublishedVideosByOwner(r.Context(), channelID, feedItemLimit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rss, err := feed.ChannelFeed(h.baseURL, channel, videos)
	if err != nil {
		logrus.WithError(err).WithField("channel_id", channelID).Error("Error generating RSS")
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml")
	w.Write([]byte(rss))
}
