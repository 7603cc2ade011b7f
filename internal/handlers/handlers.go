package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"vidtube/internal/models"
	"vidtube/internal/query"
	"vidtube/pkg/tasks"
)

// Store is what the handlers need from the database. *db.Store implements
// it.
type Store interface {
	Ping(ctx context.Context) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	ChannelStats(ctx context.Context, ownerID uuid.UUID) (*models.ChannelStats, error)
	SearchVideos(ctx context.Context, q query.Search) (*models.Page[models.VideoSummary], error)

	GetVideoByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	GetVideosByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error)
	GetPublishedVideosByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.Video, error)
	TogglePublishStatus(ctx context.Context, videoID, ownerID uuid.UUID) (*models.Video, error)

	ToggleSubscription(ctx context.Context, channelID, subscriberID uuid.UUID) (*models.Subscription, error)
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.SubscriptionEntry, error)
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.SubscriptionEntry, error)

	ToggleLike(ctx context.Context, userID uuid.UUID, target models.LikeTarget) (*models.Like, error)
	LikedVideos(ctx context.Context, userID uuid.UUID) ([]models.Video, error)

	ListVideoComments(ctx context.Context, videoID uuid.UUID, p query.Pagination) (*models.Page[models.Comment], error)
	ListUserTweets(ctx context.Context, ownerID uuid.UUID) ([]models.Tweet, error)
}

type Handlers struct {
	store       Store
	asynqClient tasks.TaskEnqueuer
	baseURL     string
}

func New(store Store, asynqClient tasks.TaskEnqueuer, baseURL string) *Handlers {
	return &Handlers{
		store:       store,
		asynqClient: asynqClient,
		baseURL:     baseURL,
	}
}

func (h *Handlers) Healthcheck(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"}, "Server is running OK!")
}
