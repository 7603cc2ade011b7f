package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
	"vidtube/internal/query"
)

// Same shape as searchVideosQuery: one row even for an empty page, plus a
// flag telling a missing video apart from one with no comments.
const videoCommentsQuery = `
	WITH matched AS (
		SELECT c.*
		FROM comments c
		WHERE c.video_id = $1
	)
	SELECT t.video_exists, t.total, p.*
	FROM (
		SELECT
			EXISTS (SELECT 1 FROM videos WHERE id = $1) AS video_exists,
			(SELECT COUNT(*) FROM matched) AS total
	) t
	LEFT JOIN LATERAL (
		SELECT
			ROW_NUMBER() OVER (ORDER BY m.created_at DESC, m.id DESC) AS position,
			m.id, m.video_id, m.content, m.created_at,
			u.id AS owner_id,
			u.full_name AS owner_full_name,
			u.username AS owner_username,
			u.avatar_url AS owner_avatar_url
		FROM matched m
		JOIN users u ON u.id = m.owner_id
		ORDER BY position
		LIMIT $2 OFFSET $3
	) p ON TRUE
	ORDER BY p.position
`

type commentRow struct {
	VideoExists    bool           `db:"video_exists"`
	Total          int64          `db:"total"`
	Position       sql.NullInt64  `db:"position"`
	ID             uuid.NullUUID  `db:"id"`
	VideoID        uuid.NullUUID  `db:"video_id"`
	Content        sql.NullString `db:"content"`
	CreatedAt      sql.NullTime   `db:"created_at"`
	OwnerID        uuid.NullUUID  `db:"owner_id"`
	OwnerFullName  sql.NullString `db:"owner_full_name"`
	OwnerUsername  sql.NullString `db:"owner_username"`
	OwnerAvatarURL sql.NullString `db:"owner_avatar_url"`
}

func (r commentRow) comment() models.Comment {
	return models.Comment{
		ID:        r.ID.UUID,
		VideoID:   r.VideoID.UUID,
		Content:   r.Content.String,
		CreatedAt: r.CreatedAt.Time,
		Owner: models.OwnerProfile{
			ID:        r.OwnerID.UUID,
			FullName:  r.OwnerFullName.String,
			Username:  r.OwnerUsername.String,
			AvatarURL: r.OwnerAvatarURL.String,
		},
	}
}

// ListVideoComments returns one page of a video's comments, newest first.
// A video without comments is an empty page; a missing video is NotFound.
func (s *Store) ListVideoComments(ctx context.Context, videoID uuid.UUID, p query.Pagination) (*models.Page[models.Comment], error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var rows []commentRow
	if err := s.db.SelectContext(ctx, &rows, videoCommentsQuery, videoID, p.Limit, p.Offset()); err != nil {
		logrus.WithError(err).WithField("video_id", videoID).Error("Error listing comments")
		return nil, apperr.Store(err, "list comments")
	}
	if len(rows) == 0 || !rows[0].VideoExists {
		return nil, apperr.New(apperr.NotFound, "Video not found")
	}

	items := make([]models.Comment, 0, len(rows))
	for _, row := range rows {
		if row.ID.Valid {
			items = append(items, row.comment())
		}
	}
	return models.NewPage(items, rows[0].Total, p.Page, p.Limit), nil
}
