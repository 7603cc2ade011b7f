package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/middleware"
)

// NewRouter builds the API route table. metricsHandler is mounted at
// /metrics when non-nil.
func NewRouter(h *Handlers, auth *middleware.Authenticator, metrics *middleware.Metrics, metricsHandler http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging)
	if metrics != nil {
		r.Use(metrics.Middleware)
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, apiError{StatusCode: http.StatusNotFound, Kind: "ROUTE_NOT_FOUND", Message: "Route not found"})
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Middleware)

	api.HandleFunc("/healthcheck", h.Healthcheck).Methods(http.MethodGet)

	api.HandleFunc("/dashboard/stats", h.GetChannelStats).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/videos", h.GetChannelVideos).Methods(http.MethodGet)

	api.HandleFunc("/videos", h.GetAllVideos).Methods(http.MethodGet)
	api.HandleFunc("/videos/{videoId}", h.GetVideoByID).Methods(http.MethodGet)
	api.HandleFunc("/videos/toggle/publish/{videoId}", h.TogglePublishStatus).Methods(http.MethodPatch)

	api.HandleFunc("/subscriptions/c/{channelId}", h.ToggleSubscription).Methods(http.MethodPost)
	api.HandleFunc("/subscriptions/c/{channelId}", h.GetChannelSubscribers).Methods(http.MethodGet)
	api.HandleFunc("/subscriptions/u/{subscriberId}", h.GetSubscribedChannels).Methods(http.MethodGet)

	api.HandleFunc("/likes/toggle/{kind}/{targetId}", h.ToggleLike).Methods(http.MethodPost)
	api.HandleFunc("/likes/videos", h.GetLikedVideos).Methods(http.MethodGet)

	api.HandleFunc("/comments/{videoId}", h.GetVideoComments).Methods(http.MethodGet)
	api.HandleFunc("/tweets/user/{userId}", h.GetUserTweets).Methods(http.MethodGet)

	api.HandleFunc("/channels/{channelId}/feed.rss", h.GetChannelFeed).Methods(http.MethodGet)

	return r
}
