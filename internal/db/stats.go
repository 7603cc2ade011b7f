package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
)

// Every count is a scalar sub-select keyed on the owner, so subscription
// and tweet counts are taken once rather than once per video row. Postgres
// evaluates the whole statement against a single snapshot.
const channelStatsQuery = `
	SELECT
		EXISTS (SELECT 1 FROM users WHERE id = $1) AS channel_exists,
		(SELECT COUNT(*) FROM videos WHERE owner_id = $1) AS total_videos,
		(SELECT COALESCE(SUM(views), 0)::bigint FROM videos WHERE owner_id = $1) AS total_views,
		(SELECT COUNT(DISTINCT subscriber_id) FROM subscriptions WHERE channel_id = $1) AS subscribers,
		(SELECT COUNT(DISTINCT channel_id) FROM subscriptions WHERE subscriber_id = $1) AS subscribed_to,
		(SELECT COUNT(*)
			FROM likes l
			JOIN videos v ON l.target_kind = 'video' AND l.target_id = v.id
			WHERE v.owner_id = $1) AS total_likes,
		(SELECT COUNT(*)
			FROM comments c
			JOIN videos v ON v.id = c.video_id
			WHERE v.owner_id = $1) AS total_comments,
		(SELECT COUNT(*) FROM tweets WHERE owner_id = $1) AS total_tweets
`

type channelStatsRow struct {
	ChannelExists bool `db:"channel_exists"`
	models.ChannelStats
}

// ChannelStats rolls up the dashboard counters for ownerID. A channel with
// no activity gets zeros; only a missing user is NotFound.
func (s *Store) ChannelStats(ctx context.Context, ownerID uuid.UUID) (*models.ChannelStats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var row channelStatsRow
	if err := s.db.GetContext(ctx, &row, channelStatsQuery, ownerID); err != nil {
		logrus.WithError(err).WithField("owner_id", ownerID).Error("Error computing channel stats")
		return nil, apperr.Store(err, "channel stats")
	}
	if !row.ChannelExists {
		return nil, apperr.New(apperr.NotFound, "Channel not found")
	}

	stats := row.ChannelStats
	return &stats, nil
}
